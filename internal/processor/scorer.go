package processor

import (
	"context"
	"fmt"
	"io"

	"prosody-eval-go/internal/aggregator"
	"prosody-eval-go/internal/config"
	"prosody-eval-go/internal/dataset"
	"prosody-eval-go/internal/extractor"
	"prosody-eval-go/internal/logger"
	"prosody-eval-go/internal/report"
	"prosody-eval-go/internal/types"
)

// Scorer correlates stored model ratings with the human averages.
type Scorer struct {
	Cfg config.Scorer
	Log *logger.Logger
	Out io.Writer
}

// Run loads both datasets, joins them and prints the correlations. Setup
// failures are returned; a bad response file is counted as an issue.
func (s *Scorer) Run(ctx context.Context) (report.ScoreSummary, error) {
	var sum report.ScoreSummary

	truth, err := dataset.LoadGroundTruth(s.Cfg.GroundTruthPath, s.Cfg.Sheet, s.Cfg.Columns)
	if err != nil {
		return sum, fmt.Errorf("load ground truth: %w", err)
	}
	sum.Loaded = len(truth)
	s.Log.WithField("entries", sum.Loaded).Info("ground truth loaded")

	files, err := dataset.LoadResponses(s.Cfg.ResponsesDir)
	if err != nil {
		return sum, err
	}

	extracted := make(map[string]types.Scores, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		log := s.Log.WithField("file", f.Name)
		if f.Err != nil {
			log.WithField("error", f.Err.Error()).Warn("cannot read response file")
			sum.Issues = append(sum.Issues, f.Name)
			continue
		}
		scores, err := extractor.ExtractScores(f.Raw)
		if err != nil {
			log.WithField("error", err.Error()).Warn("could not extract scores")
			sum.Issues = append(sum.Issues, f.Name)
			continue
		}
		extracted[f.Name] = scores
	}
	sum.Extracted = len(extracted)

	sum.Match = aggregator.Match(truth, extracted, s.Cfg.AudioExt)
	if n := len(sum.Match.UnmatchedTruth); n > 0 {
		s.Log.WithField("count", n).Warn("annotation entries without response")
	}
	if n := len(sum.Match.UnmatchedResponses); n > 0 {
		s.Log.WithField("count", n).Warn("responses without annotation entry")
	}
	sum.Insight = aggregator.Aggregate(sum.Match.Pairs)

	report.PrintScores(s.Out, sum)

	if s.Cfg.ReportPath != "" {
		if err := report.WriteWorkbook(s.Cfg.ReportPath, sum); err != nil {
			return sum, err
		}
		s.Log.WithField("report_path", s.Cfg.ReportPath).Info("report written")
	}
	return sum, nil
}
