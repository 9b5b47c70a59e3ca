package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/snow/lang"
	"github.com/ardnew/snow/log"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand] for the edit-parse-retry loop. It
// writes content to a temp file, opens the user's editor, and parses the
// result. On a parse error the user is prompted to re-edit.
type editCommand struct {
	content string
	ctxFunc func() context.Context
	result  string
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. An emptied file leaves result
// empty. If the user declines to re-edit, it returns [ErrEditDeclined].
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "snow-repl-*.snow")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	content := c.content

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		src, err := lang.ReadFile(ctx, tmpPath, lang.WithLogger(c.logger))
		if err != nil {
			return err
		}

		if strings.TrimSpace(src) == "" {
			return nil
		}

		_, parseErr := lang.Parse(src)
		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(src)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.result = src

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", report(src, parseErr))
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = src
	}
}

// editorCommand returns the editor program and its arguments from $VISUAL or
// $EDITOR, falling back to vi.
func editorCommand() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if args := strings.Fields(os.Getenv(name)); len(args) > 0 {
			return args
		}
	}

	return []string{defaultEditor}
}

// runEditor launches the user's editor on the given file path and waits for
// it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	args := editorCommand()

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
