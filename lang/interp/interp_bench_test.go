package interp

import (
	"io"
	"testing"
)

func BenchmarkRun(b *testing.B) {
	benchmarks := []struct {
		name string
		src  string
	}{
		{"arithmetic", "a = 0 repeat 1000 { a = a + 2 * 3 - 1 }"},
		{"comparisons", "n = 0 repeat 1000 { if n < 500 < 100 { n = n + 1 } }"},
		{"loop break", "i = 0 loop { i = i + 1 if i >= 1000 { break } }"},
		{"output", "repeat 1000 { out 1.5 }"},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			nodes := compile(b, bm.src)

			b.ReportAllocs()

			for b.Loop() {
				if _, err := New(nodes, io.Discard).Run(b.Context()); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
