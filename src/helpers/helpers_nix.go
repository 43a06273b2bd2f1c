//go:build !windows

/*
   Helpers for all non-windows machines
*/

package helpers

import "os"

// UserDir is the name of the Tessella directory in the user's home directory.
const UserDir = ".tessella"

func userBaseDir() (string, error) {
	return os.UserHomeDir()
}
