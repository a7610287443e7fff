package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewStderrLogger builds an AsyncLogger whose background goroutine emits
// through zerolog's console writer to stderr. This is the CLI harness's
// default sink; an engine built with a nil sink uses Nop instead.
func NewStderrLogger(capacity int) *AsyncLogger {
	return newZerologLogger(capacity, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"})
}

// FileLogger is an AsyncLogger that also owns the file it writes to. This
// is the supplemented equivalent of the original engine's FileLogControl.
type FileLogger struct {
	*AsyncLogger
	file *os.File
}

// NewFileLogger builds a FileLogger appending newline-delimited JSON
// records to path, creating it if necessary.
func NewFileLogger(capacity int, path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{AsyncLogger: newZerologLogger(capacity, f), file: f}, nil
}

// Close stops the background goroutine and closes the underlying file.
func (l *FileLogger) Close() error {
	if err := l.AsyncLogger.Close(); err != nil {
		return err
	}
	return l.file.Close()
}

func newZerologLogger(capacity int, w io.Writer) *AsyncLogger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	return NewAsyncLogger(capacity, func(msg string) {
		logger.Info().Msg(msg)
	})
}
