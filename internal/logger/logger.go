package logger

import (
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"
)

// Setup initializes Logrus with a rotating log file under dir.
func Setup(dir string) {
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "ffb.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 7,  // keep up to 7 old files
		MaxAge:     7,  // days
		Compress:   true,
	}

	logrus.SetOutput(rotator)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.SetLevel(logrus.InfoLevel)
}

// L returns the standard Logrus logger configured by Setup.
func L() *logrus.Logger {
	return logrus.StandardLogger()
}
