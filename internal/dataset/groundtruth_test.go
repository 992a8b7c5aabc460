package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"prosody-eval-go/internal/config"
	"prosody-eval-go/internal/types"
)

func defaultColumns() config.Columns {
	return config.DefaultScorer().Columns
}

func TestLoadGroundTruthCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avg.csv")
	writeFile(t, path, "\ufeffaudio,accuracy_avg,fluency_avg,prosody_avg,notes\n"+
		"a.wav,4.0,3.5,5.0,ok\n"+
		"b.wav, 2 ,2.5,3,\n"+
		",,,,\n"+
		"a.wav,1,1,1,dup\n")

	rows, err := LoadGroundTruth(path, "", defaultColumns())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []types.GroundTruth{
		{Audio: "a.wav", Accuracy: 1, Fluency: 1, Prosody: 1},
		{Audio: "b.wav", Accuracy: 2, Fluency: 2.5, Prosody: 3},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestLoadGroundTruthErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "missing column", content: "audio,accuracy_avg,fluency_avg\na.wav,1,2\n"},
		{name: "non numeric", content: "audio,accuracy_avg,fluency_avg,prosody_avg\na.wav,good,2,3\n"},
		{name: "short row", content: "audio,accuracy_avg,fluency_avg,prosody_avg\na.wav,1,2\n"},
		{name: "empty", content: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "avg.csv")
			writeFile(t, path, tc.content)
			_, err := LoadGroundTruth(path, "", defaultColumns())
			if !errors.Is(err, ErrBadTable) {
				t.Fatalf("expected ErrBadTable, got %v", err)
			}
		})
	}
}

func TestLoadGroundTruthMissingFile(t *testing.T) {
	_, err := LoadGroundTruth(filepath.Join(t.TempDir(), "nope.csv"), "", defaultColumns())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadGroundTruthWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avg.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Audio", "Accuracy_Avg", "Fluency_Avg", "Prosody_Avg"},
		{"a.wav", 4.0, 3.5, 5.0},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadGroundTruth(path, "", defaultColumns())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := types.GroundTruth{Audio: "a.wav", Accuracy: 4, Fluency: 3.5, Prosody: 5}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
