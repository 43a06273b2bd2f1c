// Package src holds the Main function of the Tessella pattern server. It sets
// everything up: configuration, logging, the jobs store, the processing
// pipeline and the web server. Then it waits for a stop signal.
//
// It is in package src because it is imported from the project's root
// folder.
package src

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/afero"

	"github.com/tessella/tessella/src/config"
	"github.com/tessella/tessella/src/daemon"
	"github.com/tessella/tessella/src/helpers"
	"github.com/tessella/tessella/src/jobs"
	"github.com/tessella/tessella/src/palette"
	"github.com/tessella/tessella/src/pipeline"
	"github.com/tessella/tessella/src/version"
	"github.com/tessella/tessella/src/webserver"
)

const (
	pidFileName = "pidfile.pid"

	// pruneInterval is how often expired jobs are removed.
	pruneInterval = 10 * time.Minute

	// stopTimeout is how long in-flight requests are given on shutdown.
	stopTimeout = 30 * time.Second
)

var (
	// PidFile is the path of the file with the process ID of the server.
	// Relative paths are in the user directory.
	PidFile string

	// ShowVersion makes the binary print its version and exit.
	ShowVersion bool

	// UserPath overrides the directory with the user configuration.
	UserPath string
)

func init() {
	flag.StringVar(&PidFile, "p", pidFileName, "Pidfile. Relative to the user directory.")
	flag.BoolVar(&ShowVersion, "v", false, "Show version and build information.")
	flag.StringVar(&UserPath, "u", "", "Directory with the user configuration and data.")
}

// Main is the only thing run in the project's root main.go file.
// For all intent and purposes this is the main function.
//
// sqlFiles must contain the database migrations in its "migrations"
// directory.
func Main(sqlFiles fs.FS) {
	flag.Parse()

	if ShowVersion {
		version.Print(os.Stdout)
		return
	}

	osFS := afero.NewOsFs()

	cfg := config.Config{UserPath: UserPath}
	if err := cfg.FindAndParse(osFS); err != nil {
		log.Fatalf("Error parsing configuration: %s\n", err)
	}

	if !daemon.Debug {
		if err := helpers.SetLogsFile(osFS, cfg.UserDataPath(cfg.LogFile)); err != nil {
			log.Fatalf("Error setting log file: %s\n", err)
		}
	}

	pidFile := cfg.UserDataPath(PidFile)
	if err := helpers.SetUpPidFile(osFS, pidFile); err != nil {
		log.Fatalf("Error setting up PID file: %s\n", err)
	}
	defer helpers.RemovePidFile(osFS, pidFile)

	if err := run(&cfg, sqlFiles, osFS); err != nil {
		log.Printf("%s\n", err)
		helpers.RemovePidFile(osFS, pidFile)
		os.Exit(1)
	}
}

// run starts all components and blocks until a stop signal is received and
// every component has stopped.
func run(cfg *config.Config, sqlFiles fs.FS, osFS afero.Fs) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := jobs.NewSQLiteStore(
		ctx,
		cfg.UserDataPath(cfg.SqliteDatabase),
		sqlFiles,
		osFS,
		cfg.UserDataPath(cfg.JobsDirectory),
	)
	if err != nil {
		return fmt.Errorf("opening jobs store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing jobs store: %s\n", err)
		}
	}()

	runner := pipeline.NewRunner(ctx)
	defer func() {
		runner.Cancel()
		runner.Wait()
	}()

	pruneDone := make(chan struct{})
	go func() {
		defer close(pruneDone)
		pruneJobs(ctx, store, cfg.JobTTLDuration())
	}()

	srv := webserver.NewServer(*cfg, store, runner, palette.DefaultRegistry())
	srv.Serve()

	log.Printf("Tessella %s listening on %s\n", version.Version, cfg.Listen)

	serverDone := make(chan struct{})
	go func() {
		srv.Wait()
		close(serverDone)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, daemon.StopSignals...)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		log.Printf("Stopping on signal %s\n", sig)
	case <-serverDone:
		log.Printf("Web server stopped\n")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	srv.Stop(stopCtx)
	<-serverDone

	cancel()
	<-pruneDone

	return nil
}

// pruneJobs removes jobs older than ttl every pruneInterval until ctx is
// done.
func pruneJobs(ctx context.Context, store jobs.Store, ttl time.Duration) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		removed, err := store.PruneBefore(ctx, time.Now().Add(-ttl))
		if err != nil {
			log.Printf("Error pruning jobs: %s\n", err)
		} else if removed > 0 {
			log.Printf("Pruned %d expired jobs\n", removed)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
