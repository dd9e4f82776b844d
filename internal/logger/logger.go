// Package logger provides the logging interface used across finstim,
// with console and rotating-file implementations on top of log/slog.
package logger

// Log levels accepted by the constructors.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warning"
	LevelError = "error"
)

// Log sink types accepted by the factory.
const (
	TypeConsole = "console"
	TypeFile    = "file"
)

// Logger defines the logging interface.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
