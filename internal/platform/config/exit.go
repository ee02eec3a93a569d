package config

import (
	"fmt"
	"os"
	"strings"
)

// ExitFailure is the process status for any fatal command error.
const ExitFailure = 1

// Exitf writes a formatted error line to stderr and exits with ExitFailure.
// Deferred calls do not run, so output already written stays on disk.
func Exitf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(os.Stderr, msg)
	os.Exit(ExitFailure)
}
