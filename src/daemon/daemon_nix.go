//go:build !windows

package daemon

import (
	"os"
	"syscall"
)

// StopSignals contains all the signals which stop the server gracefully and
// make it remove its pidfile.
var StopSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGHUP,
}
