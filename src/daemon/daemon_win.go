//go:build windows

package daemon

import "os"

// StopSignals contains all the signals which stop the server gracefully and
// make it remove its pidfile.
var StopSignals = []os.Signal{
	os.Interrupt,
}
