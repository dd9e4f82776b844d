package logger

import "fmt"

// Settings selects and configures a logger implementation.
type Settings struct {
	Type     string // console or file
	Level    string
	FilePath string
	// Rotation settings for file loggers.
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// New builds a logger from settings.
func New(s Settings) (Logger, error) {
	switch s.Level {
	case "", LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return nil, fmt.Errorf("logger: unsupported level %q", s.Level)
	}

	switch s.Type {
	case "", TypeConsole:
		return NewConsoleLogger(s.Level), nil
	case TypeFile:
		if s.FilePath == "" {
			return nil, fmt.Errorf("logger: file path required for file logger")
		}
		return NewFileLogger(s.Level, s.FilePath, s.MaxSize, s.MaxBackups, s.MaxAge), nil
	default:
		return nil, fmt.Errorf("logger: unsupported type %q", s.Type)
	}
}
