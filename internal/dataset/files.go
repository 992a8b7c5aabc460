package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BaseName strips the directory and the given suffix from path.
func BaseName(path, suffix string) string {
	return strings.TrimSuffix(filepath.Base(path), suffix)
}

// Enumerate returns every non-directory entry under root (symlinks included) whose name ends with
// suffix, sorted.
func Enumerate(root, suffix string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), suffix) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}

// DoneBases returns the stems of all .json files under outputRoot.
// A missing outputRoot yields an empty set.
func DoneBases(outputRoot string) (map[string]struct{}, error) {
	done := map[string]struct{}{}
	files, err := Enumerate(outputRoot, ".json")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return done, nil
		}
		return nil, err
	}
	for _, f := range files {
		done[BaseName(f, ".json")] = struct{}{}
	}
	return done, nil
}

// Pending filters files down to those without output. When two files share
// a base name only the first is kept.
func Pending(files []string, done map[string]struct{}, suffix string) (pending []string, duplicates []string) {
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		base := BaseName(f, suffix)
		if _, ok := done[base]; ok {
			continue
		}
		if _, ok := seen[base]; ok {
			duplicates = append(duplicates, f)
			continue
		}
		seen[base] = struct{}{}
		pending = append(pending, f)
	}
	return pending, duplicates
}
