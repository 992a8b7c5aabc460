package types

// DimensionRating is one scored dimension of a model response.
type DimensionRating struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Rating is the structured reply the instruction prompt asks the model for.
type Rating struct {
	Accuracy  DimensionRating `json:"Accuracy"`
	Fluency   DimensionRating `json:"Fluency"`
	Prosody   DimensionRating `json:"Prosody"`
	Reasoning string          `json:"Reasoning"`
}

// FallbackRecord holds a reply that was not valid JSON.
type FallbackRecord struct {
	Response string `json:"response"`
}

type Scores struct {
	Accuracy int `json:"accuracy"`
	Fluency  int `json:"fluency"`
	Prosody  int `json:"prosody"`
}

// GroundTruth is one row of the human-annotated averages table.
type GroundTruth struct {
	Audio    string  `json:"audio"`
	Accuracy float64 `json:"accuracy_avg"`
	Fluency  float64 `json:"fluency_avg"`
	Prosody  float64 `json:"prosody_avg"`
}

type MatchedPair struct {
	Audio    string      `json:"audio"`
	Response string      `json:"response"`
	Model    Scores      `json:"model"`
	Human    GroundTruth `json:"human"`
}

// FileResult is the outcome of collecting one annotation file.
type FileResult struct {
	Path       string `json:"path"`
	Base       string `json:"base"`
	OutputPath string `json:"output_path,omitempty"`
	Fallback   bool   `json:"fallback,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}
