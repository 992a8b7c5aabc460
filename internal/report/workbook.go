package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	pairsSheet       = "pairs"
	correlationSheet = "correlation"
)

// WriteWorkbook saves the matched pairs and per-dimension results as an
// .xlsx file.
func WriteWorkbook(path string, s ScoreSummary) error {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fmt.Errorf("report path %s: only .xlsx is supported", path)
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), pairsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	rows := [][]any{{
		"audio", "response",
		"model_accuracy", "model_fluency", "model_prosody",
		"human_accuracy", "human_fluency", "human_prosody",
	}}
	for _, p := range s.Match.Pairs {
		rows = append(rows, []any{
			p.Audio, p.Response,
			p.Model.Accuracy, p.Model.Fluency, p.Model.Prosody,
			p.Human.Accuracy, p.Human.Fluency, p.Human.Prosody,
		})
	}
	if err := writeRows(f, pairsSheet, rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(correlationSheet); err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	rows = [][]any{{"dimension", "n", "pcc", "p_value", "note"}}
	for _, d := range s.Insight.Dimensions {
		if d.Err != nil {
			rows = append(rows, []any{d.Name, d.Correlation.N, nil, nil, d.Err.Error()})
			continue
		}
		rows = append(rows, []any{d.Name, d.Correlation.N, d.Correlation.R, d.Correlation.P, ""})
	}
	if err := writeRows(f, correlationSheet, rows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
