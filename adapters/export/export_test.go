package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"coinlab/domain/coin"
)

var exportTrials = coin.TrialSequence{coin.Heads, coin.Tails, coin.Heads}

// TestWriteCSV_Table verifies the two-column layout with a header row
func TestWriteCSV_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportTrials); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"Flip,Outcome",
		"1,Heads",
		"2,Tails",
		"3,Heads",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %q", len(expected), len(lines), lines)
	}
	for i, want := range expected {
		if strings.TrimSpace(lines[i]) != want {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want)
		}
	}
}

// TestWriteCSV_Empty verifies an empty sequence still yields the header
func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "Flip,Outcome" {
		t.Errorf("expected only header, got %q", buf.String())
	}
}

// TestWriteXLSX_Roundtrip writes a workbook and reads the cells back
func TestWriteXLSX_Roundtrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, exportTrials); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	cases := []struct {
		cell string
		want string
	}{
		{"A1", "Flip"},
		{"B1", "Outcome"},
		{"A2", "1"},
		{"B2", "Heads"},
		{"B3", "Tails"},
		{"A4", "3"},
		{"B4", "Heads"},
	}
	for _, tc := range cases {
		got, err := f.GetCellValue(sheetName, tc.cell)
		if err != nil {
			t.Fatalf("read %s: %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("cell %s: got %q, want %q", tc.cell, got, tc.want)
		}
	}
}
