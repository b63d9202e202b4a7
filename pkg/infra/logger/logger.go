package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultDir  = "logs"
	DefaultFile = "api.log"
)

type Options struct {
	Dir     string
	File    string
	Level   string
	Console io.Writer
}

// NewLogger returns a JSON logger writing to <dir>/<file> through an
// AsyncFileWriter and mirroring to the console. The returned closer flushes
// the file and must be called on shutdown.
func NewLogger(opts Options) (*logrus.Logger, io.Closer, error) {
	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.File == "" {
		opts.File = DefaultFile
	}
	if opts.Level == "" {
		opts.Level = os.Getenv("LOG_LEVEL")
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if strings.ContainsRune(opts.File, filepath.Separator) {
		return nil, nil, fmt.Errorf("invalid log file name %q", opts.File)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if err := os.MkdirAll(opts.Dir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
	}
	writer, err := NewAsyncFileWriter(filepath.Join(opts.Dir, opts.File), 32*1024)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}

	logger.SetOutput(writer)
	logger.AddHook(NewConsoleHook(opts.Console, level))
	return logger, writer, nil
}
