package core

// Logger receives progress output from long running operations such as a render
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards every message
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(format string, args ...interface{}) {}
