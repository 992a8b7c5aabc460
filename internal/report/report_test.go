package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"prosody-eval-go/internal/aggregator"
	"prosody-eval-go/internal/types"
)

func sampleSummary() ScoreSummary {
	pairs := []types.MatchedPair{
		{Audio: "a.wav", Response: "a.json", Model: types.Scores{Accuracy: 1, Fluency: 2, Prosody: 3}, Human: types.GroundTruth{Audio: "a.wav", Accuracy: 1, Fluency: 2, Prosody: 3}},
		{Audio: "b.wav", Response: "b.json", Model: types.Scores{Accuracy: 2, Fluency: 2, Prosody: 4}, Human: types.GroundTruth{Audio: "b.wav", Accuracy: 2, Fluency: 3, Prosody: 4.5}},
		{Audio: "c.wav", Response: "c.json", Model: types.Scores{Accuracy: 3, Fluency: 2, Prosody: 5}, Human: types.GroundTruth{Audio: "c.wav", Accuracy: 3, Fluency: 4, Prosody: 5}},
	}
	return ScoreSummary{
		Loaded:    4,
		Extracted: 3,
		Issues:    []string{"bad.json"},
		Match: aggregator.MatchResult{
			Pairs:          pairs,
			UnmatchedTruth: []string{"d.wav"},
		},
		Insight: aggregator.Aggregate(pairs),
	}
}

func TestPrintScores(t *testing.T) {
	var buf bytes.Buffer
	PrintScores(&buf, sampleSummary())
	out := buf.String()
	for _, want := range []string{
		"Loaded 4 entries from annotations file\n",
		"Successfully extracted scores from 3 files\n",
		"1 files had issues.\n",
		"Matched 3 files between JSON and annotations\n",
		"1 annotation entries had no JSON file\n",
		"Pearson Correlation Coefficient Results:\n",
		"Accuracy PCC: 1.0000 (p-value: 0.0000)\n",
		"Fluency PCC: insufficient data (n=3)\n",
		"Prosody PCC: ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "No matches") {
		t.Fatalf("unexpected no-match line:\n%s", out)
	}
}

func TestPrintScoresNoMatches(t *testing.T) {
	var buf bytes.Buffer
	PrintScores(&buf, ScoreSummary{Loaded: 2, Insight: aggregator.Aggregate(nil)})
	out := buf.String()
	if !strings.Contains(out, "Matched 0 files") || !strings.Contains(out, "No matches found between JSON files and annotations") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "PCC") {
		t.Fatalf("no correlation lines expected:\n%s", out)
	}
}

func TestCollectPlan(t *testing.T) {
	var buf bytes.Buffer
	CollectPlan(&buf, 2, 1, 1)
	want := "File list: 2\nOutput list: 1\nUnprocessed files: 1\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := WriteWorkbook(path, sampleSummary()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	pairs, err := f.GetRows(pairsSheet)
	if err != nil {
		t.Fatalf("pairs rows: %v", err)
	}
	if len(pairs) != 4 || pairs[1][0] != "a.wav" || pairs[2][7] != "4.5" {
		t.Fatalf("unexpected pairs sheet: %v", pairs)
	}
	corr, err := f.GetRows(correlationSheet)
	if err != nil {
		t.Fatalf("correlation rows: %v", err)
	}
	if len(corr) != 4 || corr[1][0] != "Accuracy" || corr[2][4] != "insufficient data" {
		t.Fatalf("unexpected correlation sheet: %v", corr)
	}
}

func TestWriteWorkbookRejectsOtherExtensions(t *testing.T) {
	if err := WriteWorkbook(filepath.Join(t.TempDir(), "report.csv"), sampleSummary()); err == nil {
		t.Fatalf("expected error for .csv report path")
	}
}
