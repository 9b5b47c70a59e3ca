package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

//nolint:gochecknoglobals
var (
	debugBinary = regexp.MustCompile(`^__debug_bin\d+$`)
	leadingDots = regexp.MustCompile(`^\.+`)
)

// Prefix returns the name used for the configuration and cache directories
// and as the environment variable prefix: the executable's base name without
// extension or leading dots. Binaries built by the dlv debugger use [Name].
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	id := os.Args[0]
	if exe, err := os.Executable(); err == nil {
		id = exe
	}

	return prefixOf(id)
})

func prefixOf(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if debugBinary.MatchString(base) {
		return Name
	}

	if base = leadingDots.ReplaceAllString(base, ""); base == "" {
		return Name
	}

	return base
}

// ConfigDir returns the directory holding the configuration file.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding REPL history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir joins Prefix to the platform directory returned by base, falling
// back to fallback under the home directory and then the working directory.
func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, fallback)
		} else if wd, werr := os.Getwd(); werr == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
