package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates the application logger. Release mode (GIN_MODE=release) logs json at info level,
// other modes log text at debug level. A non-empty level overrides the mode default.
func New(output io.Writer, level string) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(output)

	if os.Getenv("GIN_MODE") == "release" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}

	if level == "" {
		return l, nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger level: %w", err)
	}
	l.SetLevel(parsed)
	return l, nil
}
