package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

// TestLoadScriptsOrder tests that scripts are read in command-line order.
func TestLoadScriptsOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.snow"), "out 1")
	b := writeFile(t, filepath.Join(dir, "b.snow"), "out 2")

	scripts, err := loadScripts(t.Context(), []string{b, a})
	if err != nil {
		t.Fatal(err)
	}

	if len(scripts) != 2 {
		t.Fatalf("got %d scripts, want 2", len(scripts))
	}

	if scripts[0].src != "out 2" || scripts[1].src != "out 1" {
		t.Errorf("got sources %q, %q", scripts[0].src, scripts[1].src)
	}

	if scripts[0].name != b {
		t.Errorf("got name %q, want %q", scripts[0].name, b)
	}
}

// TestLoadScriptsDuplicates tests that a file named more than once, directly
// or through a symlink, is read once.
func TestLoadScriptsDuplicates(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "main.snow"), "out 1")
	link := filepath.Join(dir, "link.snow")

	if err := os.Symlink(file, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	scripts, err := loadScripts(t.Context(), []string{file, link, file})
	if err != nil {
		t.Fatal(err)
	}

	if len(scripts) != 1 {
		t.Errorf("got %d scripts, want 1", len(scripts))
	}
}

// TestLoadScriptsSearchPath tests that relative names missing from the
// working directory are found along the search path, in order.
func TestLoadScriptsSearchPath(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(second, "lib.snow"), "out 2")
	writeFile(t, filepath.Join(second, "only.snow"), "out 3")
	writeFile(t, filepath.Join(first, "lib.snow"), "out 1")

	ctx := WithSearchPath(t.Context(), []string{first, second})

	scripts, err := loadScripts(ctx, []string{"lib.snow", "only.snow"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(first, "lib.snow"),
		filepath.Join(second, "only.snow"),
	}

	for i, s := range scripts {
		if s.path != want[i] {
			t.Errorf("script %d resolved to %q, want %q", i, s.path, want[i])
		}
	}
}

// TestLoadScriptsNotFound tests the error for a script that cannot be found.
func TestLoadScriptsNotFound(t *testing.T) {
	ctx := WithSearchPath(t.Context(), []string{t.TempDir()})

	_, err := loadScripts(ctx, []string{"missing.snow"})
	if !errors.Is(err, ErrScriptNotFound) {
		t.Errorf("got %v, want %v", err, ErrScriptNotFound)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
}

// TestFindScriptAbsolute tests that absolute names are never searched.
func TestFindScriptAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.snow"), "")

	missing := filepath.Join(t.TempDir(), "x.snow")

	if _, err := findScript(missing, []string{dir}); err == nil {
		t.Errorf("findScript(%q) found a file in the search path", missing)
	}
}

// TestStreams tests that commands write to the kong application's writers.
func TestStreams(t *testing.T) {
	if out, errw := streams(context.Background()); out != os.Stdout || errw != os.Stderr {
		t.Error("streams without kong context should be the standard streams")
	}

	var stdout, stderr bytes.Buffer

	var cli struct{}

	parser, err := kong.New(&cli, kong.Writers(&stdout, &stderr))
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	out, errw := streams(WithContext(t.Context(), ktx))
	if out != &stdout || errw != &stderr {
		t.Error("streams did not return the kong writers")
	}
}

// TestErrorIs tests that errors derived from a sentinel match it.
func TestErrorIs(t *testing.T) {
	base := errors.New("cause")
	err := ErrReadScript.With().Wrap(base)

	if !errors.Is(err, ErrReadScript) {
		t.Error("derived error does not match its sentinel")
	}

	if !errors.Is(err, base) {
		t.Error("derived error does not match its cause")
	}

	if errors.Is(err, ErrScriptFailed) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if got, want := err.Error(), "read script: cause"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
