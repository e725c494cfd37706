package utils

import (
	"runtime"
	"strings"

	"github.com/pkg/profile"

	"github.com/poppolopoppo/slngen/internal/base"
)

var LogProfiling = base.NewLogCategory("Profiling")

/***************************************
 * Profiling Mode
 ***************************************/

type ProfilingMode byte

const (
	PROFILING_NONE ProfilingMode = iota
	PROFILING_BLOCK
	PROFILING_CPU
	PROFILING_GOROUTINE
	PROFILING_MEMORY
	PROFILING_MEMORYALLOC
	PROFILING_MEMORYHEAP
	PROFILING_MUTEX
	PROFILING_TRACE
)

func ProfilingModes() []ProfilingMode {
	return []ProfilingMode{
		PROFILING_NONE,
		PROFILING_BLOCK,
		PROFILING_CPU,
		PROFILING_GOROUTINE,
		PROFILING_MEMORY,
		PROFILING_MEMORYALLOC,
		PROFILING_MEMORYHEAP,
		PROFILING_MUTEX,
		PROFILING_TRACE,
	}
}
func (x ProfilingMode) Mode() func(*profile.Profile) {
	switch x {
	case PROFILING_BLOCK:
		return profile.BlockProfile
	case PROFILING_CPU:
		return profile.CPUProfile
	case PROFILING_GOROUTINE:
		return profile.GoroutineProfile
	case PROFILING_MEMORY:
		return profile.MemProfile
	case PROFILING_MEMORYALLOC:
		return profile.MemProfileAllocs
	case PROFILING_MEMORYHEAP:
		return profile.MemProfileHeap
	case PROFILING_MUTEX:
		return profile.MutexProfile
	case PROFILING_TRACE:
		return profile.TraceProfile
	default:
		base.UnexpectedValue(x)
		return nil
	}
}
func (x ProfilingMode) String() string {
	switch x {
	case PROFILING_NONE:
		return "NONE"
	case PROFILING_BLOCK:
		return "BLOCK"
	case PROFILING_CPU:
		return "CPU"
	case PROFILING_GOROUTINE:
		return "GOROUTINE"
	case PROFILING_MEMORY:
		return "MEM"
	case PROFILING_MEMORYALLOC:
		return "MEMALLOC"
	case PROFILING_MEMORYHEAP:
		return "MEMHEAP"
	case PROFILING_MUTEX:
		return "MUTEX"
	case PROFILING_TRACE:
		return "TRACE"
	default:
		base.UnexpectedValue(x)
		return ""
	}
}
func (x *ProfilingMode) Set(in string) error {
	for _, it := range ProfilingModes() {
		if strings.EqualFold(in, it.String()) {
			*x = it
			return nil
		}
	}
	return base.MakeUnexpectedValueError(x, in)
}
func (x ProfilingMode) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}
func (x *ProfilingMode) UnmarshalText(data []byte) error {
	return x.Set(string(data))
}

/***************************************
 * Profiling flags
 ***************************************/

type ProfilingFlags struct {
	Profiling   ProfilingMode
	ProfilePath Directory
}

var GetProfilingFlags = NewGlobalCommandParsableFlags("profiling options", &ProfilingFlags{
	Profiling: PROFILING_NONE,
})

func (flags *ProfilingFlags) Flags(cfv CommandFlagsVisitor) {
	cfv.Variable("Profiling", "set profiling mode", &flags.Profiling)
	cfv.Variable("ProfilePath", "output directory for profiles (default: working directory)", &flags.ProfilePath)
}

/***************************************
 * Profiler
 ***************************************/

var runningProfiler interface {
	Stop()
}

// StartProfiling is a no-op unless -Profiling was given, the returned func stops the profiler.
func StartProfiling() func() {
	flags := GetProfilingFlags()
	if flags.Profiling == PROFILING_NONE {
		return func() {}
	}

	path := flags.ProfilePath
	if !path.Valid() {
		path = UFS.Working
	}

	base.LogWarning(LogProfiling, "use %v profiling mode, writing to %q", flags.Profiling, path)
	if flags.Profiling == PROFILING_CPU {
		runtime.SetCPUProfileRate(300) // default is 100
	}
	runningProfiler = profile.Start(
		flags.Profiling.Mode(),
		profile.NoShutdownHook,
		profile.Quiet,
		profile.ProfilePath(path.String()))
	return PurgeProfiling
}

func PurgeProfiling() {
	if runningProfiler != nil {
		runningProfiler.Stop()
		runningProfiler = nil
	}
}
