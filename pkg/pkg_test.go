package pkg

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion(t *testing.T) {
	if Version == "" || strings.TrimSpace(Version) != Version {
		t.Errorf("Version = %q", Version)
	}

	if strings.Count(Version, ".") != 2 {
		t.Errorf("Version %q is not major.minor.patch", Version)
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/snow", "snow"},
		{"./snowy", "snowy"},
		{"/tmp/__debug_bin3141", Name},
		{"/tmp/.snow.d", "snow"},
		{"/tmp/...", Name},
	}

	for _, tt := range tests {
		if got := prefixOf(filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestUserDir(t *testing.T) {
	ok := func() (string, error) { return "/base", nil }
	if got := userDir(ok, ".x"); got != filepath.Join("/base", Prefix()) {
		t.Errorf("userDir = %q", got)
	}

	failed := func() (string, error) { return "", errors.New("no dir") }
	if got := userDir(failed, ".x"); filepath.Base(got) != Prefix() {
		t.Errorf("fallback userDir = %q", got)
	}
}
