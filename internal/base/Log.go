package base

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

/***************************************
 * Logger API
 ***************************************/

var LogGlobal = NewLogCategory("Global")

var gLogger Logger = NewLogger(os.Stderr)

func GetLogger() Logger { return gLogger }

func LogDebug(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_DEBUG, msg, args...)
}
func LogTrace(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_TRACE, msg, args...)
}
func LogVeryVerbose(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_VERYVERBOSE, msg, args...)
}
func LogVerbose(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_VERBOSE, msg, args...)
}
func LogInfo(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_INFO, msg, args...)
}
func LogClaim(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_CLAIM, msg, args...)
}

func LogWarning(category *LogCategory, msg string, args ...interface{}) {
	if !gLogWarningAsError {
		gLogger.Log(category, LOG_WARNING, msg, args...)
	} else {
		LogError(category, msg, args...)
	}
}
func LogWarningVerbose(category *LogCategory, msg string, args ...interface{}) {
	if IsLogLevelActive(LOG_VERBOSE) {
		LogWarning(category, msg, args...)
	}
}

func LogError(category *LogCategory, msg string, args ...interface{}) {
	gLogger.Log(category, LOG_ERROR, msg, args...)
}
func LogPanicErr(category *LogCategory, err error) {
	LogError(category, "panic: caught error %v", err)
	FlushLog()
	panic(err)
}
func LogPanicIfFailed(category *LogCategory, err error) {
	if err != nil {
		LogPanicErr(category, err)
	}
}

func LogForwardln(msg ...string) {
	gLogger.Forwardln(msg...)
}

func IsLogLevelActive(level LogLevel) bool {
	return gLogger.IsVisible(level)
}
func FlushLog() {
	gLogger.Flush()
}

var gLogWarningAsError bool = false

func SetLogWarningAsError(enabled bool) {
	gLogWarningAsError = enabled
}

/***************************************
 * Logger interface
 ***************************************/

type LogCategory struct {
	Name  string
	Level LogLevel
	Hash  uint64
}

type Logger interface {
	IsVisible(level LogLevel) bool
	SetLevel(level LogLevel) LogLevel
	SetShowCategory(enabled bool)
	SetShowTimestamp(enabled bool)
	SetWriter(dst io.Writer)

	Forwardln(msg ...string)

	Log(category *LogCategory, level LogLevel, msg string, args ...interface{})
	Flush()
}

/***************************************
 * Errors
 ***************************************/

func MakeError(msg string, args ...interface{}) error {
	return fmt.Errorf(msg, args...)
}

func MakeUnexpectedValueError(dst interface{}, any interface{}) error {
	return MakeError("unexpected <%T> value: %#v", dst, any)
}

/***************************************
 * Log Category
 ***************************************/

type logManager struct {
	barrier    sync.Mutex
	categories map[string]*LogCategory
}

var gLogManager = logManager{
	categories: make(map[string]*LogCategory, 16),
}

func MakeLogCategory(name string) LogCategory {
	sum64a := fnv.New64a()
	sum64a.Write([]byte(name))
	sum64a.Write([]byte("%%category"))
	return LogCategory{
		Name:  name,
		Level: LOG_FATAL,
		Hash:  sum64a.Sum64(),
	}
}

func NewLogCategory(name string) *LogCategory {
	gLogManager.barrier.Lock()
	defer gLogManager.barrier.Unlock()
	if category, ok := gLogManager.categories[name]; ok {
		return category
	}
	category := MakeLogCategory(name)
	gLogManager.categories[name] = &category
	return &category
}

// SetLogCategoryLevel lowers the visibility threshold of a single category.
func SetLogCategoryLevel(name string, level LogLevel) {
	NewLogCategory(name).Level = level
}

/***************************************
 * Log level
 ***************************************/

type LogLevel int32

const (
	LOG_ALL LogLevel = iota
	LOG_DEBUG
	LOG_TRACE
	LOG_VERYVERBOSE
	LOG_VERBOSE
	LOG_INFO
	LOG_CLAIM
	LOG_WARNING
	LOG_ERROR
	LOG_FATAL
)

func (x LogLevel) IsVisible(level LogLevel) bool {
	return (int32(level) >= int32(x))
}
func (x LogLevel) String() string {
	switch x {
	case LOG_ALL:
		return "ALL"
	case LOG_DEBUG:
		return "DEBUG"
	case LOG_TRACE:
		return "TRACE"
	case LOG_VERYVERBOSE:
		return "VERYVERBOSE"
	case LOG_VERBOSE:
		return "VERBOSE"
	case LOG_INFO:
		return "INFO"
	case LOG_CLAIM:
		return "CLAIM"
	case LOG_WARNING:
		return "WARNING"
	case LOG_ERROR:
		return "ERROR"
	case LOG_FATAL:
		return "FATAL"
	default:
		UnexpectedValue(x)
		return ""
	}
}
func (x *LogLevel) Set(in string) error {
	for lvl := LOG_ALL; lvl <= LOG_FATAL; lvl++ {
		if strings.EqualFold(in, lvl.String()) {
			*x = lvl
			return nil
		}
	}
	return MakeUnexpectedValueError(x, in)
}

func (x LogLevel) header() string {
	switch x {
	case LOG_DEBUG:
		return "🐜 "
	case LOG_TRACE:
		return "👣 "
	case LOG_VERYVERBOSE:
		return "👥 "
	case LOG_VERBOSE:
		return "🗣️ "
	case LOG_INFO:
		return "🔹 "
	case LOG_CLAIM:
		return "❇️ "
	case LOG_WARNING:
		return "⚠️ "
	case LOG_ERROR:
		return "❌ "
	case LOG_FATAL:
		return "💀 "
	default:
		return ""
	}
}

/***************************************
 * Basic Logger
 ***************************************/

type basicLogger struct {
	barrier       sync.Mutex
	MinimumLevel  LogLevel
	ShowCategory  bool
	ShowTimestamp bool
	Writer        io.Writer

	startedAt time.Time
}

func NewLogger(dst io.Writer) Logger {
	return &basicLogger{
		MinimumLevel:  LOG_INFO,
		ShowCategory:  true,
		ShowTimestamp: false,
		Writer:        dst,
		startedAt:     time.Now(),
	}
}

func (x *basicLogger) IsVisible(level LogLevel) bool {
	return x.MinimumLevel.IsVisible(level)
}
func (x *basicLogger) SetLevel(level LogLevel) LogLevel {
	previous := x.MinimumLevel
	if level < LOG_FATAL {
		x.MinimumLevel = level
	} else {
		x.MinimumLevel = LOG_FATAL
	}
	return previous
}
func (x *basicLogger) SetShowCategory(enabled bool) {
	x.ShowCategory = enabled
}
func (x *basicLogger) SetShowTimestamp(enabled bool) {
	x.ShowTimestamp = enabled
}
func (x *basicLogger) SetWriter(dst io.Writer) {
	Assert(func() bool { return dst != nil })
	x.barrier.Lock()
	defer x.barrier.Unlock()
	x.Writer = dst
}

func (x *basicLogger) Forwardln(msg ...string) {
	if len(msg) == 0 {
		return
	}

	x.barrier.Lock()
	defer x.barrier.Unlock()

	for _, it := range msg {
		io.WriteString(x.Writer, it)
	}
	if !strings.HasSuffix(msg[len(msg)-1], "\n") {
		fmt.Fprintln(x.Writer)
	}
}

func (x *basicLogger) Log(category *LogCategory, level LogLevel, msg string, args ...interface{}) {
	// log level visible?
	if !x.IsVisible(level) && !category.Level.IsVisible(level) {
		return
	}

	x.barrier.Lock()
	defer x.barrier.Unlock()

	if x.ShowTimestamp {
		fmt.Fprintf(x.Writer, "%010.5f |  ", time.Since(x.startedAt).Seconds())
	}

	io.WriteString(x.Writer, level.header())

	if x.ShowCategory {
		fmt.Fprintf(x.Writer, " %s: ", category.Name)
	}

	fmt.Fprintf(x.Writer, msg, args...)
	fmt.Fprintln(x.Writer)
}

func (x *basicLogger) Flush() {
	x.barrier.Lock()
	defer x.barrier.Unlock()
	if f, ok := x.Writer.(interface{ Sync() error }); ok {
		f.Sync()
	}
}

/***************************************
 * Benchmark
 ***************************************/

type BenchmarkLog struct {
	category  *LogCategory
	message   string
	startedAt time.Time
}

func (x BenchmarkLog) Close() time.Duration {
	elapsed := time.Since(x.startedAt)
	LogVerbose(x.category, "%s took %v", x.message, elapsed)
	return elapsed
}

func LogBenchmark(category *LogCategory, msg string, args ...interface{}) BenchmarkLog {
	formatted := fmt.Sprintf(msg, args...) // before measured scope
	return BenchmarkLog{
		category:  category,
		message:   formatted,
		startedAt: time.Now(),
	}
}
