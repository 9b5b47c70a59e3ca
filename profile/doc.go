// Package profile runs [github.com/pkg/profile] around a snow invocation.
//
// Profiling is compiled in only with the "pprof" build tag. Without it,
// [Modes] is empty and [Profiler.Start] always returns a no-op stopper, so
// the default binary carries no profiling code.
//
//	p := profile.Profiler{Mode: "cpu", Path: dir}
//	defer p.Start().Stop()
//
// Profiles are written to Path, one file per mode (cpu.pprof, mem.pprof,
// ...), and can be inspected with go tool pprof. Builds with the tag also
// register the net/http/pprof handlers.
package profile
