package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEnumerateMatchesSuffixRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b_result.TextGrid"), "x")
	writeFile(t, filepath.Join(root, "sub", "a_result.TextGrid"), "x")
	writeFile(t, filepath.Join(root, "c.TextGrid"), "x")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")

	got, err := Enumerate(root, "_result.TextGrid")
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	want := []string{
		filepath.Join(root, "b_result.TextGrid"),
		filepath.Join(root, "sub", "a_result.TextGrid"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEnumerateFollowsSymlinkedFiles(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "shared_result.TextGrid")
	writeFile(t, target, "x")
	link := filepath.Join(root, "spk_result.TextGrid")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Enumerate(root, "_result.TextGrid")
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	if !reflect.DeepEqual(got, []string{link}) {
		t.Fatalf("got %v, want [%s]", got, link)
	}
}

func TestEnumerateMissingRoot(t *testing.T) {
	if _, err := Enumerate(filepath.Join(t.TempDir(), "nope"), ".json"); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestDoneBases(t *testing.T) {
	out := t.TempDir()
	writeFile(t, filepath.Join(out, "spk1_001.json"), "{}")
	writeFile(t, filepath.Join(out, "spk1_002.txt"), "")

	done, err := DoneBases(out)
	if err != nil {
		t.Fatalf("done bases: %v", err)
	}
	if len(done) != 1 {
		t.Fatalf("expected 1 done base, got %v", done)
	}
	if _, ok := done["spk1_001"]; !ok {
		t.Fatalf("missing spk1_001 in %v", done)
	}

	empty, err := DoneBases(filepath.Join(out, "missing"))
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty set for missing dir, got %v %v", empty, err)
	}
}

func TestPendingSkipsDoneAndDuplicates(t *testing.T) {
	files := []string{
		"/in/a/one_result.TextGrid",
		"/in/b/one_result.TextGrid",
		"/in/two_result.TextGrid",
		"/in/three_result.TextGrid",
	}
	done := map[string]struct{}{"two": {}}

	pending, dups := Pending(files, done, "_result.TextGrid")
	wantPending := []string{"/in/a/one_result.TextGrid", "/in/three_result.TextGrid"}
	if !reflect.DeepEqual(pending, wantPending) {
		t.Fatalf("pending = %v, want %v", pending, wantPending)
	}
	if !reflect.DeepEqual(dups, []string{"/in/b/one_result.TextGrid"}) {
		t.Fatalf("duplicates = %v", dups)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName("/x/y/spk_01_result.TextGrid", "_result.TextGrid"); got != "spk_01" {
		t.Fatalf("got %q", got)
	}
	if got := BaseName("/x/y/spk_01.json", ".json"); got != "spk_01" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadResponses(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), `{"response":"x"}`)
	writeFile(t, filepath.Join(dir, "a.json"), `{}`)
	writeFile(t, filepath.Join(dir, "c.txt"), `ignored`)
	writeFile(t, filepath.Join(dir, "nested", "d.json"), `{}`)

	got, err := LoadResponses(dir)
	if err != nil {
		t.Fatalf("load responses: %v", err)
	}
	if len(got) != 2 || got[0].Name != "a.json" || got[1].Name != "b.json" {
		t.Fatalf("unexpected responses: %+v", got)
	}
	if string(got[1].Raw) != `{"response":"x"}` {
		t.Fatalf("unexpected raw: %s", got[1].Raw)
	}

	if _, err := LoadResponses(filepath.Join(dir, "missing")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
