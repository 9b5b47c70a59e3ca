package repl

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestHistoryPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}

	entries := []HistoryEntry{
		{Line: "x = 1", Mode: modeEval},
		{Line: "vars", Mode: modeCtrl},
		{Line: "repeat 2 {\n  out x\n}", Mode: modeEval},
	}

	for _, e := range entries {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	got := loaded.Entries()
	if len(got) != len(entries) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(entries))
	}

	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], entries[i])
		}
	}
}

func TestHistoryAdd(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, line := range []string{"a", "  ", "b", "b", "a"} {
		if err := h.Add(line, modeEval); err != nil {
			t.Fatal(err)
		}
	}

	// The same text in another mode is a distinct entry.
	if err := h.Add("a", modeCtrl); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{
		{Line: "b", Mode: modeEval},
		{Line: "a", Mode: modeEval},
		{Line: "a", Mode: modeCtrl},
	}

	got := h.Entries()
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if lines := strings.Count(string(data), "\n"); lines != len(want) {
		t.Errorf("file has %d lines, want %d:\n%s", lines, len(want), data)
	}
}

func TestHistoryLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for i := range maxHistory + 5 {
		if err := h.Add("out "+strconv.Itoa(i), modeEval); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != maxHistory {
		t.Fatalf("Len = %d, want %d", h.Len(), maxHistory)
	}

	first, err := h.Entry(0)
	if err != nil {
		t.Fatal(err)
	}

	if first.Line != "out 5" {
		t.Errorf("oldest entry = %q, want %q", first.Line, "out 5")
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if loaded.Len() != maxHistory {
		t.Errorf("loaded Len = %d, want %d", loaded.Len(), maxHistory)
	}
}

func TestHistoryEntryBounds(t *testing.T) {
	h := NewHistory("")

	if err := h.Add("out 1", modeEval); err != nil {
		t.Fatal(err)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.Entry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Entry(%d) = %v, want %v", i, err, ErrOutOfBounds)
		}
	}
}

func TestDecodeEntry(t *testing.T) {
	tests := []struct {
		line string
		want HistoryEntry
		ok   bool
	}{
		{`E:"out 1"`, HistoryEntry{Line: "out 1", Mode: modeEval}, true},
		{`C:"vars"`, HistoryEntry{Line: "vars", Mode: modeCtrl}, true},
		{`E:"a\nb"`, HistoryEntry{Line: "a\nb", Mode: modeEval}, true},
		{"out 2", HistoryEntry{Line: "out 2", Mode: modeEval}, true},
		{`E:""`, HistoryEntry{Mode: modeEval}, false},
		{"   ", HistoryEntry{}, false},
	}

	for _, tt := range tests {
		got, ok := decodeEntry(tt.line)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("decodeEntry(%q) = %+v, %v, want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}
