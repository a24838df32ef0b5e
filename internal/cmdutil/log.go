// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	warnPrefix = color.New(color.FgYellow).Sprint("WARN:")
	errPrefix  = color.New(color.FgRed).Sprint("ERROR:")
)

// Warnf writes a warning line to dst unless quiet is set.
func Warnf(dst io.Writer, quiet bool, format string, a ...any) {
	if quiet {
		return
	}
	_, _ = fmt.Fprintf(dst, warnPrefix+" "+format+"\n", a...)
}

// Errorf writes an error line to dst. Errors are never silenced by quiet.
func Errorf(dst io.Writer, format string, a ...any) {
	_, _ = fmt.Fprintf(dst, errPrefix+" "+format+"\n", a...)
}
