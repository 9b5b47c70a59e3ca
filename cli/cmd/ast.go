package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/snow/lang"
	"github.com/ardnew/snow/lang/ast"
	"github.com/ardnew/snow/log"
)

// AST prints the syntax tree of a script.
type AST struct {
	Format string `default:"yaml" enum:"yaml,json,text"   help:"Output format (${enum})."      short:"f"`
	Indent int    `default:"2"                            help:"Indent width; 0 for flow/compact output." short:"i"`

	File string `arg:"" default:"-" help:"Script file, searched along --path, or '-' for stdin." name:"file"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := loadScript(ctx, a.File)
	if err != nil {
		return err
	}

	stdout, stderr := streams(ctx)

	nodes, err := lang.Compile(ctx, s.src, lang.WithLogger(log.Default()))
	if err != nil {
		if rerr := newReporter(stderr).report(s.name, s.src, err); rerr != nil {
			return ErrWriteOutput.Wrap(rerr)
		}

		return ErrScriptFailed.With(slog.String("file", s.name)).Wrap(err)
	}

	switch a.Format {
	case "json":
		return formatJSON(stdout, nodes, a.Indent)
	case "text":
		return formatText(stdout, nodes)
	default:
		return formatYAML(ctx, stdout, nodes, a.Indent)
	}
}

func formatYAML(ctx context.Context, w io.Writer, nodes []ast.Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ast.ToList(nodes), opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if _, err = w.Write(data); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func formatJSON(w io.Writer, nodes []ast.Node, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ast.ToList(nodes), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ast.ToList(nodes))
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	if _, err = fmt.Fprintln(w, string(data)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// formatText writes one statement per line with every operation parenthesized.
func formatText(w io.Writer, nodes []ast.Node) error {
	for _, n := range nodes {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
