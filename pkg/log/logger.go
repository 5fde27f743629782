package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Level selects how much output the loggers produce
type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is a named, leveled logger
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all loggers to sink. The level resets to Info.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of every logger
func SetLevel(level Level) {
	leveledBackend.SetLevel(level.backendLevel(), "")
}

func (level Level) backendLevel() logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

// ParseLevel maps a level name such as "debug" or "warning" to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "notice", "":
		return Notice, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

// printfLogger forwards Printf style progress output to a leveled logger at info level
type printfLogger struct {
	logger Logger
}

// Printf implements core.Logger
func (p printfLogger) Printf(format string, args ...interface{}) {
	p.logger.Infof("%s", strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// AsPrintf adapts a leveled logger to the core.Logger interface used by the renderer
func AsPrintf(logger Logger) core.Logger {
	return printfLogger{logger: logger}
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
