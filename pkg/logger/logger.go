package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger. It is usable with defaults before
// Init is called; Init applies environment configuration on startup.
var Log = logrus.New()

// Init configures the global logger from the environment.
//
// LOG_LEVEL selects the level (default "info"); LOG_FORMAT=json switches
// to the JSON formatter for log collection, anything else keeps the
// human-readable text formatter.
func Init() {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log.SetOutput(os.Stdout)
}
