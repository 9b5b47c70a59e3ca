package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestSearchPath(t *testing.T) {
	root := t.TempDir()

	dir := func(name string) string {
		path := filepath.Join(root, name)
		if err := os.Mkdir(path, 0o700); err != nil {
			t.Fatal(err)
		}

		return path
	}

	a, b, c := dir("a"), dir("b"), dir("c")
	missing := filepath.Join(root, "missing")

	file := filepath.Join(root, "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	env := strings.Join([]string{c, missing, file}, string(os.PathListSeparator))

	got := searchPath([]string{a, b}, env)

	for _, want := range []string{a, b, c} {
		if !slices.Contains(got, want) {
			t.Errorf("search path %q missing %q", got, want)
		}
	}

	for _, bad := range []string{missing, file} {
		if slices.Contains(got, bad) {
			t.Errorf("search path %q contains %q", got, bad)
		}
	}

	if len(got) > 0 && got[0] != a {
		t.Errorf("search path %q does not start with the first flag value", got)
	}

	if i, j := slices.Index(got, b), slices.Index(got, c); i > j {
		t.Errorf("flag directory %q after environment directory %q", b, c)
	}
}

func TestSearchPathEmpty(t *testing.T) {
	if got := searchPath(nil, ""); len(got) != 0 {
		t.Errorf("got %q, want no directories", got)
	}
}

func TestSearchPathEnv(t *testing.T) {
	if got := searchPathEnv(); !strings.HasSuffix(got, "PATH") || got != strings.ToUpper(got) {
		t.Errorf("searchPathEnv() = %q", got)
	}
}
