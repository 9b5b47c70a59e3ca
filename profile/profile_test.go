package profile

import (
	"slices"
	"testing"
)

func TestMake(t *testing.T) {
	p := Make(WithMode("cpu"), WithPath("/tmp/snow"), WithQuiet(true))

	if p != (Profiler{Mode: "cpu", Path: "/tmp/snow", Quiet: true}) {
		t.Errorf("Make() = %+v", p)
	}
}

func TestStart_Disabled(t *testing.T) {
	for _, mode := range []string{"", "bogus"} {
		s := Profiler{Mode: mode}.Start()
		if _, ok := s.(ignore); !ok {
			t.Errorf("mode %q started a profiler: %T", mode, s)
		}

		s.Stop()
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !Enabled {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without profiling support", modes)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v", modes)
	}
}
