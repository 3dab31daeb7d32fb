package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = newLogger(os.Stdout)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(textFormatter())
	return l
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	}
}

// SetupLogger applies the configured level and format ("text" or "json").
func SetupLogger(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(textFormatter())
	}
	return nil
}

// SetLogOutput redirects all log output, mostly useful in tests.
func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}

func Debug(format string, a ...interface{}) {
	log.Debugf(format, a...)
}

func Info(format string, a ...interface{}) {
	log.Infof(format, a...)
}

func Success(format string, a ...interface{}) {
	log.WithField("result", "ok").Infof(format, a...)
}

func Warn(format string, a ...interface{}) {
	log.Warnf(format, a...)
}

func Error(format string, a ...interface{}) {
	log.Errorf(format, a...)
}

func Section(title string) {
	log.Infof("══════════ %s ══════════", title)
}
