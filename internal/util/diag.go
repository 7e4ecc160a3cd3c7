// diag.go collects non-fatal warnings during semantic analysis so the
// driver can print every warning found before a fatal error (if any)
// aborts compilation. Grounded on the teacher's util.perror buffered error
// listener, simplified for a single-threaded compiler: no channel, no
// mutex, just an append-only slice.

package util

import "fmt"

// Diagnostics buffers warning messages in the order they were recorded.
type Diagnostics struct {
	warnings []error
}

// Warn appends a warning built from kind and its formatted detail. Warn is
// a no-op if kind is nil.
func (d *Diagnostics) Warn(kind error, format string, args ...interface{}) {
	if kind == nil {
		return
	}
	d.warnings = append(d.warnings, fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)))
}

// Warnings returns every warning recorded so far, in recording order.
func (d *Diagnostics) Warnings() []error {
	return d.warnings
}

// Len returns the number of buffered warnings.
func (d *Diagnostics) Len() int {
	return len(d.warnings)
}

// Flush empties the buffer.
func (d *Diagnostics) Flush() {
	d.warnings = nil
}
