//go:build windows

package helpers

import (
	"errors"
	"os"
)

// UserDir is the name of the Tessella directory in %APPDATA%.
const UserDir = "tessella"

func userBaseDir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return "", errors.New("APPDATA is not set")
	}
	return appData, nil
}
