package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotConfigured is returned when a required setting is empty.
var ErrNotConfigured = errors.New("not configured")

const (
	ProviderGemini  = "gemini"
	ProviderGateway = "gateway"
	ProviderMock    = "mock"
)

// Collector configures cmd/collect.
type Collector struct {
	InputDir  string `yaml:"input_dir"`
	OutputDir string `yaml:"output_dir"`
	Suffix    string `yaml:"suffix"`
	Workers   int    `yaml:"workers"`

	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	GatewayURL string `yaml:"gateway_url"`
	PromptFile string `yaml:"prompt_file"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	MaxRetryTime   time.Duration `yaml:"max_retry_time"`
}

// Columns names the ground-truth header fields.
type Columns struct {
	Audio    string `yaml:"audio"`
	Accuracy string `yaml:"accuracy"`
	Fluency  string `yaml:"fluency"`
	Prosody  string `yaml:"prosody"`
}

// Scorer configures cmd/score.
type Scorer struct {
	ResponsesDir    string  `yaml:"responses_dir"`
	GroundTruthPath string  `yaml:"ground_truth_path"`
	Sheet           string  `yaml:"sheet"`
	AudioExt        string  `yaml:"audio_ext"`
	Columns         Columns `yaml:"columns"`
	ReportPath      string  `yaml:"report_path"`
}

// File is the on-disk YAML layout; both tools read their own section.
type File struct {
	Collector Collector `yaml:"collector"`
	Scorer    Scorer    `yaml:"scorer"`
}

func DefaultCollector() Collector {
	return Collector{
		OutputDir:      "Gemini_ToBI",
		Suffix:         "_result.TextGrid",
		Workers:        1,
		Provider:       ProviderGemini,
		Model:          "gemini-2.0-flash",
		RequestTimeout: 60 * time.Second,
		MaxRetries:     2,
		MaxRetryTime:   2 * time.Minute,
	}
}

func DefaultScorer() Scorer {
	return Scorer{
		ResponsesDir: "Gemini_ToBI",
		AudioExt:     ".wav",
		Columns: Columns{
			Audio:    "audio",
			Accuracy: "accuracy_avg",
			Fluency:  "fluency_avg",
			Prosody:  "prosody_avg",
		},
	}
}

// Load returns defaults overlaid with the YAML file at path (if any) and
// then with environment variables.
func Load(path string) (File, error) {
	f := File{Collector: DefaultCollector(), Scorer: DefaultScorer()}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return f, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return f, fmt.Errorf("decode config: %w", err)
		}
		f.Collector.APIKey = os.ExpandEnv(f.Collector.APIKey)
	}
	if err := applyEnv(&f); err != nil {
		return f, err
	}
	return f, nil
}

func applyEnv(f *File) error {
	c := &f.Collector
	setString(&c.Provider, "LLM_PROVIDER")
	setString(&c.Model, "LLM_MODEL")
	setString(&c.APIKey, "LLM_API_KEY")
	setString(&c.GatewayURL, "LLM_GATEWAY_URL")
	setString(&c.InputDir, "INPUT_DIR")
	setString(&c.OutputDir, "OUTPUT_DIR")
	setString(&c.Suffix, "FILE_SUFFIX")
	setString(&c.PromptFile, "PROMPT_FILE")
	if os.Getenv("USE_MOCK_LLM") == "true" {
		c.Provider = ProviderMock
	}
	if v := strings.TrimSpace(os.Getenv("COLLECT_WORKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COLLECT_WORKERS: %w", err)
		}
		c.Workers = n
	}

	s := &f.Scorer
	setString(&s.ResponsesDir, "RESPONSES_DIR")
	setString(&s.GroundTruthPath, "GROUND_TRUTH_PATH")
	setString(&s.ReportPath, "REPORT_PATH")
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks the collector settings needed before any file is touched.
func (c Collector) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input dir: %w", ErrNotConfigured)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir: %w", ErrNotConfigured)
	}
	if c.Suffix == "" {
		return fmt.Errorf("suffix: %w", ErrNotConfigured)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries)
	}
	switch c.Provider {
	case ProviderMock:
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("LLM_API_KEY: %w", ErrNotConfigured)
		}
	case ProviderGateway:
		if c.APIKey == "" || c.GatewayURL == "" {
			return fmt.Errorf("llm gateway: %w", ErrNotConfigured)
		}
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	return nil
}

func (s Scorer) Validate() error {
	if s.ResponsesDir == "" {
		return fmt.Errorf("responses dir: %w", ErrNotConfigured)
	}
	if s.GroundTruthPath == "" {
		return fmt.Errorf("ground truth path: %w", ErrNotConfigured)
	}
	if s.Columns.Audio == "" || s.Columns.Accuracy == "" || s.Columns.Fluency == "" || s.Columns.Prosody == "" {
		return fmt.Errorf("ground truth columns: %w", ErrNotConfigured)
	}
	if s.ReportPath != "" && !strings.EqualFold(filepath.Ext(s.ReportPath), ".xlsx") {
		return fmt.Errorf("report path %s: only .xlsx is supported", s.ReportPath)
	}
	return nil
}
