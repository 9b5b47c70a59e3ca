package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/snow/lang"
	"github.com/ardnew/snow/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// streams returns the output writers of the kong application in ctx, or the
// process's standard streams when there is none.
func streams(ctx context.Context) (stdout, stderr io.Writer) {
	stdout, stderr = os.Stdout, os.Stderr

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Kong != nil {
		if ktx.Stdout != nil {
			stdout = ktx.Stdout
		}

		if ktx.Stderr != nil {
			stderr = ktx.Stderr
		}
	}

	return stdout, stderr
}

type searchPathKey struct{}

// WithSearchPath returns a new context.Context holding the directories
// searched for scripts that do not exist relative to the working directory.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// script is the program text of one input.
type script struct {
	name string // as given on the command line
	path string // resolved path; empty for stdin
	src  string
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// search path entries.
type fileKey struct {
	dev uint64
	ino uint64
}

// loadScripts resolves and reads each named script in order. A file named
// more than once, by any path, is read once. All occurrences of "-" are
// replaced with a single read of stdin placed last, after every regular
// file.
func loadScripts(ctx context.Context, names []string) ([]script, error) {
	var (
		scripts  []script
		hasStdin bool
	)

	seen := make(map[fileKey]struct{})
	dirs := searchPathFrom(ctx)
	opt := lang.WithLogger(log.Default())

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		path, err := findScript(name, dirs)
		if err != nil {
			return nil, ErrScriptNotFound.
				With(slog.String("file", name), slog.Any("path", dirs)).
				Wrap(err)
		}

		if key, ok := statKey(path); ok {
			if _, dup := seen[key]; dup {
				log.DebugContext(ctx, "skipping duplicate script",
					slog.String("file", name),
					slog.String("path", path),
				)

				continue
			}

			seen[key] = struct{}{}
		}

		src, err := lang.ReadFile(ctx, path, opt)
		if err != nil {
			return nil, ErrReadScript.With(slog.String("file", path)).Wrap(err)
		}

		scripts = append(scripts, script{name: name, path: path, src: src})
	}

	if hasStdin {
		src, err := lang.ReadSource(ctx, os.Stdin, opt)
		if err != nil {
			return nil, ErrReadScript.With(slog.String("file", stdinSource)).Wrap(err)
		}

		scripts = append(scripts, script{name: "<stdin>", src: src})
	}

	return scripts, nil
}

// findScript returns name if it exists as given, and otherwise the first
// match of name joined to each of dirs. Absolute names are never searched.
func findScript(name string, dirs []string) (string, error) {
	_, err := os.Stat(name)
	if err == nil || filepath.IsAbs(name) {
		return name, err
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if info, serr := os.Stat(path); serr == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", err
}

// statKey returns the identity of the file at path, following symlinks.
func statKey(path string) (fileKey, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
