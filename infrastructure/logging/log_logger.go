package logging

import (
	"log"

	"timedread/application/logging"
)

// LogLogger writes through the standard library logger. It is meant for
// embedding the reader in programs that already configure package log.
type LogLogger struct {
	prefix string
}

func NewLogLogger(prefix string) logging.Logger {
	return &LogLogger{prefix: prefix}
}

func (l LogLogger) Printf(format string, v ...any) {
	if l.prefix == "" {
		log.Printf(format, v...)
		return
	}
	log.Printf(l.prefix+": "+format, v...)
}
