package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"

	"prosody-eval-go/internal/types"
)

// ErrMissingScores wraps every reason a record yields no usable scores.
var ErrMissingScores = errors.New("missing scores")

var fencedJSON = regexp.MustCompile("(?s)```json[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```")

// ExtractScores reads the three dimension scores from a stored record.
// Fallback records carry the model text under "response"; the scores come
// from the ```json fenced block inside it. A record that is already the
// structured rating is read directly. It never panics; every failure wraps
// ErrMissingScores.
func ExtractScores(record []byte) (types.Scores, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(record, &top); err != nil {
		return types.Scores{}, fmt.Errorf("%w: decode record: %v", ErrMissingScores, err)
	}

	rawResp, ok := top["response"]
	if !ok {
		return scoresFrom(top)
	}
	var text string
	if err := json.Unmarshal(rawResp, &text); err != nil {
		return types.Scores{}, fmt.Errorf("%w: response is not text", ErrMissingScores)
	}
	m := fencedJSON.FindStringSubmatch(text)
	if m == nil {
		return types.Scores{}, fmt.Errorf("%w: no fenced json block", ErrMissingScores)
	}
	var inner map[string]json.RawMessage
	if err := json.Unmarshal([]byte(m[1]), &inner); err != nil {
		return types.Scores{}, fmt.Errorf("%w: decode fenced block: %v", ErrMissingScores, err)
	}
	return scoresFrom(inner)
}

func scoresFrom(obj map[string]json.RawMessage) (types.Scores, error) {
	var (
		s   types.Scores
		err error
	)
	if s.Accuracy, err = dimensionScore(obj, "Accuracy"); err != nil {
		return types.Scores{}, err
	}
	if s.Fluency, err = dimensionScore(obj, "Fluency"); err != nil {
		return types.Scores{}, err
	}
	if s.Prosody, err = dimensionScore(obj, "Prosody"); err != nil {
		return types.Scores{}, err
	}
	return s, nil
}

func dimensionScore(obj map[string]json.RawMessage, name string) (int, error) {
	raw, ok := obj[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s absent", ErrMissingScores, name)
	}
	var dim struct {
		Score json.Number `json:"score"`
	}
	if err := json.Unmarshal(raw, &dim); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrMissingScores, name, err)
	}
	if dim.Score == "" {
		return 0, fmt.Errorf("%w: %s.score absent", ErrMissingScores, name)
	}
	if n, err := dim.Score.Int64(); err == nil {
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("%w: %s.score %s out of range", ErrMissingScores, name, dim.Score)
		}
		return int(n), nil
	}
	f, err := dim.Score.Float64()
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s.score %q is not an integer", ErrMissingScores, name, dim.Score)
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %s.score %s out of range", ErrMissingScores, name, dim.Score)
	}
	return int(f), nil
}
