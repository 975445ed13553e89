package utils

import (
	"fmt"
	"strings"
	"time"
)

func CanColorize(col func(...interface{}) string) func(...interface{}) string {
	if Opts().NoColorize() {
		return func(is ...interface{}) string {
			return fmt.Sprintf(strings.Repeat("%s", len(is)), is...)
		}
	}
	return col
}

// SetNoColorize toggles colorization of pretty printers. Used by tests that
// compare rendered output.
func SetNoColorize(b bool) {
	opts.noColorize = b
}

func TimeTrack(start time.Time, name string) {
	VerbosePrint("%s took %s\n", name, time.Since(start))
}

func VerbosePrint(format string, a ...interface{}) (n int, err error) {
	if Opts().Verbose() {
		return fmt.Printf(format, a...)
	}
	return 0, nil
}
