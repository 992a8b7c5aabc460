package extractor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"prosody-eval-go/internal/types"
)

// BuildRecord turns a model reply into the bytes stored on disk. A reply
// that is valid JSON is re-indented as is; anything else is wrapped in a
// FallbackRecord. fallback reports which branch was taken.
func BuildRecord(text string) (record []byte, fallback bool, err error) {
	raw := bytes.TrimSpace([]byte(text))
	if json.Valid(raw) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, false, fmt.Errorf("indent record: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), false, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(types.FallbackRecord{Response: text}); err != nil {
		return nil, true, fmt.Errorf("encode fallback record: %w", err)
	}
	return buf.Bytes(), true, nil
}
