// Package pkg holds the identity of the snow module: its name, version and
// the directories it keeps configuration and cache files in.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It also names the configuration and cache
	// directories and prefixes environment variables.
	Name = "snow"
	// Description is the one-line summary shown in help output.
	Description = "Interpreter for the snow scripting language"
)

// AuthorInfo identifies one author.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the authors shown in version output.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
