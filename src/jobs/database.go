package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"runtime"
	"sync"

	migrate "github.com/ironsmile/sql-migrate"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver for database/sql
)

// sqlMigrateDirectory is the directory within the `sqlFilesFS` which contains
// the .sql files for sql-migrate.
const sqlMigrateDirectory = "migrations"

// DatabaseExecutable is the type used for passing "work unit" to the
// databaseWorker. Every function which wants to do something with the
// database creates one and sends it to the databaseWorker for execution.
type DatabaseExecutable func(db *sql.DB) error

// database owns the connection and the single goroutine which uses it.
// SQLite does not like concurrent writers so all work is serialized.
type database struct {
	db         *sql.DB
	ctx        context.Context
	cancel     context.CancelFunc
	dbExecutes chan DatabaseExecutable
	workerDone chan struct{}
	closeOnce  sync.Once
}

// openDatabase opens the sqlite database at path, applies all migrations
// from sqlFiles and starts the database worker.
func openDatabase(ctx context.Context, path string, sqlFiles fs.FS) (*database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if err := applyMigrations(db, sqlFiles); err != nil {
		db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	d := &database{
		db:         db,
		ctx:        ctx,
		cancel:     cancel,
		dbExecutes: make(chan DatabaseExecutable),
		workerDone: make(chan struct{}),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go d.databaseWorker(&wg)
	wg.Wait()

	return d, nil
}

// applyMigrations reads the database migrations dir and applies them to the
// currently open database if it is necessary.
func applyMigrations(db *sql.DB, sqlFiles fs.FS) error {
	migrationFiles, err := fs.Sub(sqlFiles, sqlMigrateDirectory)
	if err != nil {
		return fmt.Errorf("locating migrate dir within sqlFiles fs.FS failed: %w", err)
	}

	migrations := &migrate.HttpFileSystemMigrationSource{
		FileSystem: http.FS(migrationFiles),
	}

	_, err = migrate.ExecMax(db, "sqlite3", migrations, migrate.Up, 0)
	if err == nil {
		return nil
	}

	if _, ok := err.(*migrate.PlanError); ok {
		log.Printf("Error applying database migrations: %s\n", err)
		return nil
	}

	return fmt.Errorf("executing db migration failed: %w", err)
}

// databaseWorker executes everything received on dbExecutes until the
// database is closed.
func (d *database) databaseWorker(wg *sync.WaitGroup) {
	defer close(d.workerDone)
	runtime.LockOSThread()

	wg.Done()
	for {
		select {
		case executable := <-d.dbExecutes:
			if err := executable(d.db); err != nil {
				log.Printf("Error from db executable: %s", err)
			}
		case <-d.ctx.Done():
			return
		}
	}
}

// The only possible errors from executeDBJob are ones from the closed
// contexts.
func (d *database) executeDBJob(ctx context.Context, executable DatabaseExecutable) error {
	select {
	case d.dbExecutes <- executable:
		return nil
	case <-d.ctx.Done():
		return fmt.Errorf("database closed: %w", d.ctx.Err())
	case <-ctx.Done():
		return ctx.Err()
	}
}

// executeDBJobAndWait executes the `executable`, waits for it to finish. Then
// returns its error.
func (d *database) executeDBJobAndWait(ctx context.Context, executable DatabaseExecutable) error {
	var executableErr error
	done := make(chan struct{})

	work := func(db *sql.DB) error {
		defer close(done)
		executableErr = executable(db)
		return nil
	}

	if err := d.executeDBJob(ctx, work); err != nil {
		return err
	}

	<-done
	return executableErr
}

// close stops the worker and closes the connection. It is safe to call it
// many times.
func (d *database) close() error {
	var err error
	d.closeOnce.Do(func() {
		d.cancel()
		<-d.workerDone
		err = d.db.Close()
	})
	return err
}
