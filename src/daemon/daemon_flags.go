// Package daemon holds the process level settings of the server: command
// line flags and the signals on which it stops.
package daemon

import "flag"

var (
	// Debug keeps logging on stderr instead of the log file.
	Debug bool
)

func init() {
	flag.BoolVar(&Debug, "D", false, "Debug mode. Logs to stderr instead of the log file.")
}
