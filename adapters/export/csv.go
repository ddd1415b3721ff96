package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"coinlab/domain/coin"
	"coinlab/internal/errors"
)

// WriteCSV writes a trial sequence as a two-column table (flip index,
// outcome label) with a header row.
func WriteCSV(w io.Writer, trials coin.TrialSequence) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"Flip", "Outcome"}); err != nil {
		return errors.ExportError("write csv header", err)
	}
	for i, outcome := range trials {
		if err := writer.Write([]string{strconv.Itoa(i + 1), outcome.Label()}); err != nil {
			return errors.ExportError("write csv row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.ExportError("flush csv", err)
	}
	return nil
}
