package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/ardnew/mung"

	"github.com/ardnew/snow/pkg"
)

// searchPathEnv returns the environment variable holding additional script
// directories, e.g. SNOWPATH.
func searchPathEnv() string {
	return strings.ToUpper(pkg.Prefix()) + "PATH"
}

// searchPath assembles the directories searched for scripts not found
// relative to the working directory: the --path flag values first, then the
// entries of env, a list in the platform's PATH format. Directories that do
// not exist are dropped.
func searchPath(flags []string, env string) []string {
	delim := string(os.PathListSeparator)

	// Each prefix item is prepended in turn, so the last one ends up first.
	prefix := slices.Clone(flags)
	slices.Reverse(prefix)

	list := mung.Make(
		mung.WithSubjectItems(env),
		mung.WithDelim(delim),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for dir := range strings.SplitSeq(list, delim) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
