// Package logger configures the standard logrus logger shared by every package.
package logger

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Init sets level and formatter from the configured values. LOG_LEVEL and
// LOG_FORMAT, when set, take precedence. An unknown level falls back to info.
func Init(level, format string) {
	InitTo(os.Stderr, level, format)
}

func InitTo(w io.Writer, level, format string) {
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok {
		format = v
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(w)
}
