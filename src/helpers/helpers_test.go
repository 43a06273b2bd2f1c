package helpers

import (
	"fmt"
	"io/fs"
	"log"
	"strings"
	"testing"

	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// TestProjectUserPath makes sure the user directory is rooted and exists.
func TestProjectUserPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	path, err := ProjectUserPath()
	if err != nil {
		t.Fatal(err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("user path was not rooted: %s", path)
	}

	st, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !st.IsDir() {
		t.Errorf("user path %s is not a directory", path)
	}
}

func TestAbsolutePathFunctin(t *testing.T) {
	found := AbsolutePath("file", "/root/to/")
	expected := "/root/to/file"
	if found != expected {
		t.Errorf("Expected %s but got %s", expected, found)
	}

	found = AbsolutePath("/file", "/root/to/")
	expected = "/file"
	if found != expected {
		t.Errorf("Expected %s but got %s", expected, found)
	}
}

// TestSetLogsFile makes sure that logs will be stored in the expected file after
// logging has been set to it.
func TestSetLogsFile(t *testing.T) {
	testfs := afero.NewMemMapFs()
	logFile := "some/place/tessella.log"

	if err := SetLogsFile(testfs, logFile); err != nil {
		t.Fatalf("setting log file failed: %s", err)
	}
	defer log.SetOutput(os.Stdout)

	const testLogMessage = "test message"
	log.Println(testLogMessage)

	logData, err := fs.ReadFile(afero.NewIOFS(testfs), logFile)
	if err != nil {
		t.Fatalf("error reading the log file: %s", err)
	}

	if !strings.Contains(string(logData), testLogMessage) {
		t.Errorf(
			"log file did not contain `%s`. It was:\n%s",
			testLogMessage,
			string(logData),
		)
	}
}

// TestPidFileFunctions makes sure that a PID file is created and then removed as
// expected.
func TestPidFileFunctions(t *testing.T) {
	testfs := afero.NewMemMapFs()
	pidFile := "tessella.pid"
	expectedPID := os.Getpid()

	if err := SetUpPidFile(testfs, pidFile); err != nil {
		t.Fatalf("error setting up PID file: %s", err)
	}

	pidFileContents, err := fs.ReadFile(afero.NewIOFS(testfs), pidFile)
	if err != nil {
		t.Fatalf("error reading PID file: %s", err)
	}

	var foundPID int
	if _, err := fmt.Sscanf(string(pidFileContents), "%d", &foundPID); err != nil {
		t.Fatalf("error reading int from PID file: %s", err)
	}

	if foundPID != expectedPID {
		t.Errorf("expected PID %d but got %d", expectedPID, foundPID)
	}

	// Now make sure that when creating a PID file is not possible then the function
	// returns an error.
	readOnly := afero.NewReadOnlyFs(testfs)
	if err := SetUpPidFile(readOnly, pidFile); err == nil {
		t.Errorf("expected an error for read only FS but got nil")
	}

	RemovePidFile(testfs, pidFile)
	if exists, _ := afero.Exists(testfs, pidFile); exists {
		t.Errorf("PID file was not removed")
	}
}
