// Package helpers contains few helper functions which are used throughout the
// project.
package helpers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ProjectUserPath returns the directory with the user's configuration and
// data. It is created if it does not exist.
func ProjectUserPath() (string, error) {
	base, err := userBaseDir()
	if err != nil {
		return "", fmt.Errorf("finding the user directory: %w", err)
	}

	path := filepath.Join(base, UserDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	return path, nil
}

// AbsolutePath returns path joined to root unless it is already absolute.
func AbsolutePath(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// SetLogsFile sets the file to which the standard logger writes. The file
// and its directory are created if needed.
func SetLogsFile(fs afero.Fs, logFilePath string) error {
	if err := fs.MkdirAll(filepath.Dir(logFilePath), 0700); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	logFile, err := fs.OpenFile(
		logFilePath,
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0600,
	)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	log.SetOutput(logFile)
	return nil
}

// SetUpPidFile writes the process ID of the running server in pidFile.
func SetUpPidFile(fs afero.Fs, pidFile string) error {
	f, err := fs.OpenFile(pidFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating PID file: %w", err)
	}

	if _, err := fmt.Fprintf(f, "%d", os.Getpid()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing PID file: %w", err)
	}

	return f.Close()
}

// RemovePidFile removes a file created with SetUpPidFile.
func RemovePidFile(fs afero.Fs, pidFile string) {
	if err := fs.Remove(pidFile); err != nil {
		log.Printf("Error removing PID file %s: %s", pidFile, err)
	}
}
