package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)
}

// SetDebug toggles debug-level logging.
func SetDebug(enabled bool) {
	if enabled {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// WithDevice returns a logger scoped to a device target.
func WithDevice(target string) *logrus.Entry {
	return logger.WithField("device", target)
}

// WithOperation returns a logger scoped to a device and operation.
func WithOperation(target, operation string) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"device":    target,
		"operation": operation,
	})
}
