// log.go prints compiler progress and errors. Grounded on the teacher's
// plain fmt.Println/fmt.Printf idiom (main.go's run, util/perror.go) —
// spec §7 asks only for human-readable text on stdout/stderr plus an exit
// code, so there is no structured-log consumer to justify a logging
// library here.

package util

import (
	"fmt"
	"os"
)

// Info prints a progress message to standard output, e.g. "Successful parsing".
func Info(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

// Warn prints a non-fatal warning to standard error.
func Warn(err error) {
	fmt.Fprintf(os.Stderr, "warning: %s\n", err)
}

// Fatal prints a fatal error to standard error. The caller is responsible
// for exiting with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
}
