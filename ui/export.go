package ui

import (
	"io"

	"coinlab/adapters/export"
	"coinlab/ports"
)

// exportCSV streams the session's trial sequence as CSV
func (a *App) exportCSV(w io.Writer, snapshot *ports.SessionSnapshot) error {
	return export.WriteCSV(w, snapshot.Trials)
}

// exportXLSX streams the session's trial sequence as a spreadsheet
func (a *App) exportXLSX(w io.Writer, snapshot *ports.SessionSnapshot) error {
	return export.WriteXLSX(w, snapshot.Trials)
}
