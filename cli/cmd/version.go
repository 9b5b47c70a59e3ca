package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/snow/pkg"
)

// Version prints the program version and its authors.
type Version struct {
	Short bool `help:"Print only the version number." short:"s"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	stdout, _ := streams(ctx)

	if v.Short {
		if _, err := fmt.Fprintln(stdout, pkg.Version); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", pkg.Name, pkg.Version)

	for _, a := range pkg.Author {
		fmt.Fprintf(&b, "  %s <%s>\n", a.Name, a.Email)
	}

	if _, err := io.WriteString(stdout, b.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
