package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResponseFile is one stored model response.
type ResponseFile struct {
	Name string
	Raw  []byte
	Err  error
}

// LoadResponses reads every *.json file directly inside dir, sorted by name.
// A file that cannot be read is returned with Err set.
func LoadResponses(dir string) ([]ResponseFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read responses dir: %w", err)
	}
	var out []ResponseFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rf := ResponseFile{Name: e.Name()}
		rf.Raw, rf.Err = os.ReadFile(filepath.Join(dir, e.Name()))
		out = append(out, rf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
