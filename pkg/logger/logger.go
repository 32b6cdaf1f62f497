package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before InitLogger runs so that
// packages exercised from tests never hit a nil logger.
var Log = logrus.New()

func InitLogger(level, format string) {
	// Output to stdout instead of the default stderr
	Log.Out = os.Stdout

	if format == "text" {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
