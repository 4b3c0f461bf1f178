// Package profile provides optional runtime profiling for dragon.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//	dragon --pprof-mode cpu play --level 3-3 solution.dragon
//
// Without the tag [Modes] is empty and [Profiler.Start] returns a no-op.
// Profiles are written to the directory given by [Profiler.Path], named for
// the mode (cpu.pprof, mem.pprof, ...), and can be inspected with
//
//	go tool pprof -http=: cpu.pprof
//
// Builds with the tag also register the net/http/pprof handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
