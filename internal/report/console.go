package report

import (
	"errors"
	"fmt"
	"io"

	"prosody-eval-go/internal/aggregator"
)

// CollectPlan prints the file counts seen before collection starts.
func CollectPlan(w io.Writer, files, outputs, pending int) {
	fmt.Fprintln(w, "File list:", files)
	fmt.Fprintln(w, "Output list:", outputs)
	fmt.Fprintln(w, "Unprocessed files:", pending)
}

func Processed(w io.Writer, path string) {
	fmt.Fprintf(w, "Processed: %s\n", path)
}

func Failed(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "Error processing %s: %v\n", path, err)
}

// ScoreSummary is everything the scorer reports.
type ScoreSummary struct {
	Loaded    int                    `json:"loaded"`
	Extracted int                    `json:"extracted"`
	Issues    []string               `json:"issues"`
	Match     aggregator.MatchResult `json:"match"`
	Insight   aggregator.Insight     `json:"insight"`
}

// PrintScores writes the human readable scorer summary.
func PrintScores(w io.Writer, s ScoreSummary) {
	fmt.Fprintf(w, "Loaded %d entries from annotations file\n", s.Loaded)
	fmt.Fprintf(w, "Successfully extracted scores from %d files\n", s.Extracted)
	if len(s.Issues) > 0 {
		fmt.Fprintf(w, "%d files had issues.\n", len(s.Issues))
	}
	fmt.Fprintf(w, "Matched %d files between JSON and annotations\n", len(s.Match.Pairs))
	if n := len(s.Match.UnmatchedTruth); n > 0 {
		fmt.Fprintf(w, "%d annotation entries had no JSON file\n", n)
	}
	if n := len(s.Match.UnmatchedResponses); n > 0 {
		fmt.Fprintf(w, "%d JSON files had no annotation entry\n", n)
	}

	if len(s.Match.Pairs) == 0 {
		fmt.Fprintln(w, "No matches found between JSON files and annotations")
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pearson Correlation Coefficient Results:")
	for _, d := range s.Insight.Dimensions {
		if errors.Is(d.Err, aggregator.ErrInsufficientData) {
			fmt.Fprintf(w, "%s PCC: insufficient data (n=%d)\n", d.Name, d.Correlation.N)
			continue
		}
		if d.Err != nil {
			fmt.Fprintf(w, "%s PCC: error: %v\n", d.Name, d.Err)
			continue
		}
		fmt.Fprintf(w, "%s PCC: %.4f (p-value: %.4f)\n", d.Name, d.Correlation.R, d.Correlation.P)
	}
}
