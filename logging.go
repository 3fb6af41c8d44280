package cooked

import (
	"io"
	"log"
)

// logger is package-level and discards output until a host calls
// SetLogger or SetOutput, matching how a library component with no
// opinion on log destinations should behave by default.
var logger = log.New(io.Discard, "cooked: ", log.LstdFlags)

// SetLogger replaces the package logger wholesale.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// SetOutput redirects the package logger's destination, keeping its
// prefix and flags.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}
