package aggregator

import (
	"sort"
	"strings"

	"prosody-eval-go/internal/types"
)

// MatchResult is the join of ground truth rows and extracted scores.
type MatchResult struct {
	Pairs              []types.MatchedPair `json:"pairs"`
	UnmatchedTruth     []string            `json:"unmatched_truth"`
	UnmatchedResponses []string            `json:"unmatched_responses"`
}

// ResponseName maps a ground truth audio name to its response file name.
func ResponseName(audio, audioExt string) string {
	return strings.TrimSuffix(audio, audioExt) + ".json"
}

// Match joins truth rows to extracted scores keyed by response file name.
// Pairs follow the ground truth order.
func Match(truth []types.GroundTruth, extracted map[string]types.Scores, audioExt string) MatchResult {
	var res MatchResult
	used := make(map[string]struct{}, len(extracted))
	for _, gt := range truth {
		name := ResponseName(gt.Audio, audioExt)
		s, ok := extracted[name]
		if !ok {
			res.UnmatchedTruth = append(res.UnmatchedTruth, gt.Audio)
			continue
		}
		used[name] = struct{}{}
		res.Pairs = append(res.Pairs, types.MatchedPair{
			Audio:    gt.Audio,
			Response: name,
			Model:    s,
			Human:    gt,
		})
	}
	for name := range extracted {
		if _, ok := used[name]; !ok {
			res.UnmatchedResponses = append(res.UnmatchedResponses, name)
		}
	}
	sort.Strings(res.UnmatchedResponses)
	return res
}

// Dimension selects one scored dimension from a pair.
type Dimension struct {
	Name  string
	Model func(types.Scores) float64
	Human func(types.GroundTruth) float64
}

var Dimensions = []Dimension{
	{
		Name:  "Accuracy",
		Model: func(s types.Scores) float64 { return float64(s.Accuracy) },
		Human: func(g types.GroundTruth) float64 { return g.Accuracy },
	},
	{
		Name:  "Fluency",
		Model: func(s types.Scores) float64 { return float64(s.Fluency) },
		Human: func(g types.GroundTruth) float64 { return g.Fluency },
	},
	{
		Name:  "Prosody",
		Model: func(s types.Scores) float64 { return float64(s.Prosody) },
		Human: func(g types.GroundTruth) float64 { return g.Prosody },
	},
}

type DimensionResult struct {
	Name        string      `json:"name"`
	Correlation Correlation `json:"correlation"`
	Err         error       `json:"-"`
}

type Insight struct {
	Matched    int               `json:"matched"`
	Dimensions []DimensionResult `json:"dimensions"`
}

// Aggregate correlates model and human scores for every dimension.
func Aggregate(pairs []types.MatchedPair) Insight {
	ins := Insight{Matched: len(pairs)}
	for _, d := range Dimensions {
		model := make([]float64, len(pairs))
		human := make([]float64, len(pairs))
		for i, p := range pairs {
			model[i] = d.Model(p.Model)
			human[i] = d.Human(p.Human)
		}
		c, err := Pearson(model, human)
		ins.Dimensions = append(ins.Dimensions, DimensionResult{Name: d.Name, Correlation: c, Err: err})
	}
	return ins
}
