package log

import (
	"slices"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info+2", LevelInfo + 2},
		{" warn ", LevelWarn},
		{"loud", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	tests := map[Level]string{
		LevelTrace:     "trace",
		LevelDebug:     "debug",
		LevelInfo:      "info",
		LevelWarn:      "warn",
		LevelError:     "error",
		LevelInfo + 2:  "info+2",
		LevelError + 4: "error+4",
		LevelTrace - 2: "trace-2",
	}

	for l, want := range tests {
		if got := l.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", int(l), got, want)
		}

		if ParseLevel(want) != l && l >= LevelDebug {
			t.Errorf("ParseLevel(%q) does not round trip", want)
		}
	}
}

func TestLevel_UnmarshalText(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("debug")); err != nil || l != LevelDebug {
		t.Errorf("UnmarshalText = %v, %v", l, err)
	}

	var f Format
	if err := f.UnmarshalText([]byte("JSON")); err != nil || f != FormatJSON {
		t.Errorf("UnmarshalText = %v, %v", f, err)
	}
}

func TestLevelsAndFormats(t *testing.T) {
	if got := slices.Collect(Levels()); !slices.Equal(got, []string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("Levels() = %v", got)
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("Formats() = %v", got)
	}
}

func TestResolveLayout(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RFC3339", time.RFC3339},
		{"rfc-3339-nano", time.RFC3339Nano},
		{"Kitchen", time.Kitchen},
		{"ms", time.StampMilli},
		{"none", ""},
		{"  ", ""},
		{"2006/01/02", "2006/01/02"},
	}

	for _, tt := range tests {
		if got := resolveLayout(tt.in); got != tt.want {
			t.Errorf("resolveLayout(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptions(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelWarn),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
		nil,
	)

	if c.level != LevelWarn || c.format != FormatJSON || !c.caller || c.pretty {
		t.Errorf("config = %+v", c)
	}

	if c = apply(c, WithOutput(nil)); c.output == nil {
		t.Error("nil output was not replaced")
	}
}
