package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before InitLogger is called.
var Log = logrus.New()

// InitLogger configures Log with the given level and an optional file that receives a copy of stdout.
func InitLogger(levelStr string, filePath string) error {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	Log.SetOutput(io.MultiWriter(writers...))

	return nil
}

// Component returns an entry tagged with the emitting component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
