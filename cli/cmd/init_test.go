package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type level string

// initCLI mirrors the shape of the real global flags.
type initCLI struct {
	LogLevel  level  `default:"info"`
	LogPretty bool   `default:"true"  negatable:""`
	PprofMode string `default:"cpu"`
	Path      []string
	Secret    string `hidden:""`
	Depth     int    `default:"3"`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(t.Context(), ktx)
}

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "snow", "config.yaml")

			if tt.exists {
				if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
					t.Fatal(err)
				}

				if err := os.WriteFile(confPath, []byte("existing: content\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath)

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteConfig) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}

				data, _ := os.ReadFile(confPath)
				if string(data) != "existing: content\n" {
					t.Errorf("existing file modified: %q", data)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if _, err := os.Stat(confPath); err != nil {
				t.Errorf("config file not written: %v", err)
			}
		})
	}
}

// TestInitSettings tests which flag values are written and how.
func TestInitSettings(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "config.yaml")
	ctx := initContext(t, confPath, "--log-level=debug", "--no-log-pretty", "--path=a", "--path=b")

	if err := (&Init{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("written config is not YAML: %v\n%s", err, data)
	}

	if got["log-level"] != "debug" {
		t.Errorf("log-level = %v, want debug", got["log-level"])
	}

	if got["log-pretty"] != false {
		t.Errorf("log-pretty = %v, want false", got["log-pretty"])
	}

	if list, ok := got["path"].([]any); !ok || len(list) != 2 || list[0] != "a" || list[1] != "b" {
		t.Errorf("path = %#v, want [a b]", got["path"])
	}

	if _, ok := got["depth"]; !ok {
		t.Error("depth missing")
	}

	for _, key := range []string{"help", "pprof-mode", "secret"} {
		if _, ok := got[key]; ok {
			t.Errorf("%s should not be written", key)
		}
	}
}

func TestSettingValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"named_string", level("warn"), "warn"},
		{"empty_string", "", nil},
		{"int", 3, int64(3)},
		{"uint", uint8(3), uint64(3)},
		{"float", 1.5, 1.5},
		{"bool", false, false},
		{"empty_slice", []string{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := settingValue(tt.in); got != tt.want {
				t.Errorf("settingValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
