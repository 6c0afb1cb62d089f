package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ProgressLogger logs the main steps of a layout pass and of the page
// information updates.
var ProgressLogger = log.NewWithOptions(os.Stdout, log.Options{Prefix: "autosizer.progress"})

// WarningLogger emits a warning for each non fatal inconsistency, like a
// cluster root destroyed during layout or a broken precondition.
var WarningLogger = log.NewWithOptions(os.Stdout, log.Options{Prefix: "autosizer.warning"})

// DebugLogger traces the cluster decisions. It is silent unless
// its level is lowered to [log.DebugLevel].
var DebugLogger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "autosizer.debug", Level: log.InfoLevel})

// SetOutput redirects all the package loggers to [w].
func SetOutput(w io.Writer) {
	ProgressLogger.SetOutput(w)
	WarningLogger.SetOutput(w)
	DebugLogger.SetOutput(w)
}

// SetLevel changes the level of all the package loggers.
func SetLevel(level log.Level) {
	ProgressLogger.SetLevel(level)
	WarningLogger.SetLevel(level)
	DebugLogger.SetLevel(level)
}
