package extractor

import (
	"fmt"
	"os"
	"strings"
)

// DefaultInstruction is sent ahead of every TextGrid document.
const DefaultInstruction = `Assess the English pronunciation based on this ToBI label TextGrid. Give scores on accuracy, fluency, and prosody on a scale from 1 to 5, 5 being the best.

For each dimension, provide both a numeric score (integer 1-5) and a brief explanation. Then provide detailed reasoning that references specific ToBI patterns and markers from the TextGrid.

Return results in this exact JSON format:
{
  "Accuracy": {"score": 1-5, "comment": "brief explanation"},
  "Fluency": {"score": 1-5, "comment": "brief explanation"},
  "Prosody": {"score": 1-5, "comment": "brief explanation"},
  "Reasoning": "detailed analysis referencing specific ToBI markers"
}
`

// LoadInstruction returns the prompt stored at path, or DefaultInstruction
// when path is empty.
func LoadInstruction(path string) (string, error) {
	if path == "" {
		return DefaultInstruction, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("prompt file %s is empty", path)
	}
	return string(b), nil
}
