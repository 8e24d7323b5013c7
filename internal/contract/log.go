package contract

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger     = newLogger(os.Stderr)
	logMu      sync.Mutex
	rotateFile *lumberjack.Logger
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return l
}

// Logger returns the process logger.
func Logger() *logrus.Logger {
	return logger
}

// ConfigureLogging sets the log level and, when file is not empty, sends logs
// to a rotating file instead of stderr.
func ConfigureLogging(level string, file string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s'", level)
	}

	logMu.Lock()
	defer logMu.Unlock()
	logger.SetLevel(lvl)

	if rotateFile != nil {
		_ = rotateFile.Close()
		rotateFile = nil
	}
	if file == "" {
		logger.SetOutput(os.Stderr)
		return nil
	}
	rotateFile = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger.SetOutput(rotateFile)
	return nil
}

// CloseLogging flushes and closes the rotating log file, if any.
func CloseLogging() {
	logMu.Lock()
	defer logMu.Unlock()
	if rotateFile != nil {
		_ = rotateFile.Close()
		rotateFile = nil
		logger.SetOutput(os.Stderr)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	logMu.Lock()
	toFile := rotateFile != nil
	logMu.Unlock()
	if toFile {
		logger.WithError(err).Error(msg)
	}
	CloseLogging()
	os.Exit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	if err == nil {
		logger.Warn(msg)
		return
	}
	logger.WithError(err).Warn(msg)
}

// LogInfo logs an informational message with structured fields.
func LogInfo(msg string, fields logrus.Fields) {
	logger.WithFields(fields).Info(msg)
}
