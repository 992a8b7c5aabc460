package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"prosody-eval-go/internal/config"
	"prosody-eval-go/internal/types"
)

// ErrBadTable marks a ground-truth table that cannot be used.
var ErrBadTable = errors.New("bad ground truth table")

// LoadGroundTruth reads the averaged annotation table. Files ending in .xlsx
// are read with excelize, anything else as comma-separated text. Rows keep
// their file order; a repeated audio key overwrites the earlier values.
func LoadGroundTruth(path, sheet string, cols config.Columns) ([]types.GroundTruth, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readWorkbook(path, sheet)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrBadTable)
	}

	idx, err := headerIndex(rows[0], cols)
	if err != nil {
		return nil, err
	}

	var out []types.GroundTruth
	pos := map[string]int{}
	for i, r := range rows[1:] {
		line := i + 2
		if isBlank(r) {
			continue
		}
		row, err := parseRow(r, idx, line)
		if err != nil {
			return nil, err
		}
		if p, ok := pos[row.Audio]; ok {
			out[p] = row
			continue
		}
		pos[row.Audio] = len(out)
		out = append(out, row)
	}
	return out, nil
}

type columnIndex struct {
	audio, accuracy, fluency, prosody int
}

func headerIndex(header []string, cols config.Columns) (columnIndex, error) {
	find := func(name string) (int, error) {
		want := strings.ToLower(strings.TrimSpace(name))
		for i, h := range header {
			h = strings.TrimPrefix(h, "\ufeff")
			if strings.ToLower(strings.TrimSpace(h)) == want {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: missing column %q", ErrBadTable, name)
	}
	var (
		idx columnIndex
		err error
	)
	if idx.audio, err = find(cols.Audio); err != nil {
		return idx, err
	}
	if idx.accuracy, err = find(cols.Accuracy); err != nil {
		return idx, err
	}
	if idx.fluency, err = find(cols.Fluency); err != nil {
		return idx, err
	}
	if idx.prosody, err = find(cols.Prosody); err != nil {
		return idx, err
	}
	return idx, nil
}

func parseRow(r []string, idx columnIndex, line int) (types.GroundTruth, error) {
	cell := func(i int) (string, error) {
		if i >= len(r) {
			return "", fmt.Errorf("%w: row %d has %d columns", ErrBadTable, line, len(r))
		}
		return strings.TrimSpace(r[i]), nil
	}
	num := func(i int) (float64, error) {
		s, err := cell(i)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: row %d: %q is not a number", ErrBadTable, line, s)
		}
		return v, nil
	}

	var (
		row types.GroundTruth
		err error
	)
	if row.Audio, err = cell(idx.audio); err != nil {
		return row, err
	}
	if row.Audio == "" {
		return row, fmt.Errorf("%w: row %d has empty audio name", ErrBadTable, line)
	}
	if row.Accuracy, err = num(idx.accuracy); err != nil {
		return row, err
	}
	if row.Fluency, err = num(idx.fluency); err != nil {
		return row, err
	}
	if row.Prosody, err = num(idx.prosody); err != nil {
		return row, err
	}
	return row, nil
}

func isBlank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ground truth: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadTable, err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open ground truth: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: no sheets", ErrBadTable)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}
