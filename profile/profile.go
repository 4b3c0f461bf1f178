package profile

import "slices"

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Path is the output directory.
	Path string
	// Quiet suppresses the profiler's own log lines.
	Quiet bool
}

// Start begins profiling. It returns a no-op Stopper if Mode is empty or
// unsupported, or if profiling was not compiled in. Stop is always safe to
// call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" || !Supported(p.Mode) {
		return ignore{}
	}

	return start(p)
}

// Supported reports whether mode is available in this build.
func Supported(mode string) bool {
	return slices.Contains(Modes(), mode)
}

type ignore struct{}

func (ignore) Stop() {}
