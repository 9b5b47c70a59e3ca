package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/snow/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// Keys are flag names. Nested mappings are joined to their parent key with a
// hyphen and underscores may stand in for hyphens, so the following are
// equivalent:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Scalars are handed to kong as strings and sequences as lists. A file that
// is empty or fails to decode contributes nothing; command-line flags
// override any value it does provide.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil && !errors.Is(err, io.EOF) {
			log.WarnContext(ctx, "ignoring configuration file",
				slog.String("error", err.Error()),
			)

			return config{}, nil
		}

		cfg := make(config)
		cfg.flatten("", doc)

		log.TraceContext(ctx, "configuration loaded",
			slog.Int("keys", len(cfg)),
		)

		return cfg, nil
	}
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil //nolint:nilnil
}

func (c config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}

		if sub, ok := v.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		if v = scalar(v); v != nil {
			c[key] = v
		}
	}
}

// scalar converts a decoded YAML value to the form kong's mappers accept.
// Numbers become strings; nil is dropped.
func scalar(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string, bool:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		list := make([]any, 0, len(v))

		for _, e := range v {
			if e = scalar(e); e != nil {
				list = append(list, e)
			}
		}

		return list
	default:
		return fmt.Sprint(v)
	}
}
