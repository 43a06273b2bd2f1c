package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"

	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
)

// SQLiteStore is a Store which keeps job metadata and results in sqlite and
// the uploaded images as files.
type SQLiteStore struct {
	db    *database
	files afero.Fs
	dir   string

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewSQLiteStore opens or creates the database at dbPath. Uploaded images are
// stored in dir on the files file system.
func NewSQLiteStore(
	ctx context.Context,
	dbPath string,
	sqlFiles fs.FS,
	files afero.Fs,
	dir string,
) (*SQLiteStore, error) {
	if err := files.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating jobs directory: %w", err)
	}

	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	db, err := openDatabase(ctx, dbPath, sqlFiles)
	if err != nil {
		_ = enc.Close()
		dec.Close()
		return nil, err
	}

	return &SQLiteStore{
		db:    db,
		files: files,
		dir:   dir,
		enc:   enc,
		dec:   dec,
	}, nil
}

// Close stops the database worker and closes the database.
func (s *SQLiteStore) Close() error {
	err := s.db.close()
	_ = s.enc.Close()
	s.dec.Close()
	return err
}

func (s *SQLiteStore) inputPath(id string) string {
	return path.Join(s.dir, id+".upload")
}

// Create implements Store.
func (s *SQLiteStore) Create(ctx context.Context, job Job, input []byte) error {
	if job.ID == "" {
		return errors.New("job without an ID")
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	if len(job.Payload) == 0 {
		job.Payload = json.RawMessage("{}")
	}

	inputPath := s.inputPath(job.ID)

	work := func(db *sql.DB) error {
		_, err := db.Exec(`
			INSERT INTO jobs
				(id, created_at, input_path, input_format, grid_w, grid_h, payload)
			VALUES
				(@id, @createdAt, @inputPath, @format, @gridW, @gridH, @payload)
		`,
			sql.Named("id", job.ID),
			sql.Named("createdAt", job.CreatedAt.Unix()),
			sql.Named("inputPath", inputPath),
			sql.Named("format", job.InputFormat),
			sql.Named("gridW", job.GridW),
			sql.Named("gridH", job.GridH),
			sql.Named("payload", string(job.Payload)),
		)
		if err != nil {
			return fmt.Errorf("could not insert job: %w", err)
		}

		if err := afero.WriteFile(s.files, inputPath, input, 0600); err != nil {
			_, _ = db.Exec(`DELETE FROM jobs WHERE id = @id`, sql.Named("id", job.ID))
			return fmt.Errorf("saving uploaded image: %w", err)
		}

		return nil
	}

	return s.db.executeDBJobAndWait(ctx, work)
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Job, error) {
	var job Job

	work := func(db *sql.DB) error {
		var (
			createdAt int64
			payload   string
		)

		err := db.QueryRow(`
			SELECT
				id, created_at, input_format, grid_w, grid_h, payload
			FROM jobs
			WHERE id = @id
		`, sql.Named("id", id)).Scan(
			&job.ID,
			&createdAt,
			&job.InputFormat,
			&job.GridW,
			&job.GridH,
			&payload,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("could not query the database: %w", err)
		}

		job.CreatedAt = time.Unix(createdAt, 0)
		job.Payload = json.RawMessage(payload)
		return nil
	}

	if err := s.db.executeDBJobAndWait(ctx, work); err != nil {
		return Job{}, err
	}

	return job, nil
}

// Input implements Store.
func (s *SQLiteStore) Input(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.files, s.inputPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("input of %s: %w", id, ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("reading uploaded image: %w", err)
	}

	return data, nil
}

// SaveResult implements Store.
func (s *SQLiteStore) SaveResult(ctx context.Context, id, style string, g *grid.Grid) error {
	cells := make([]byte, len(g.Cells))
	for i, sym := range g.Cells {
		cells[i] = byte(sym)
	}
	compressed := s.enc.EncodeAll(cells, nil)

	work := func(db *sql.DB) error {
		res, err := db.Exec(`
			INSERT INTO job_results
				(job_id, style, grid_w, grid_h, cells, created_at)
			SELECT id, @style, @gridW, @gridH, @cells, @now
			FROM jobs
			WHERE id = @id
		`,
			sql.Named("id", id),
			sql.Named("style", style),
			sql.Named("gridW", g.W),
			sql.Named("gridH", g.H),
			sql.Named("cells", compressed),
			sql.Named("now", time.Now().Unix()),
		)
		if err != nil {
			return fmt.Errorf("could not store result: %w", err)
		}

		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}

		return nil
	}

	return s.db.executeDBJobAndWait(ctx, work)
}

// Result implements Store.
func (s *SQLiteStore) Result(ctx context.Context, id, style string) (*grid.Grid, error) {
	var (
		w, h       int
		compressed []byte
	)

	work := func(db *sql.DB) error {
		err := db.QueryRow(`
			SELECT grid_w, grid_h, cells
			FROM job_results
			WHERE job_id = @id AND style = @style
		`,
			sql.Named("id", id),
			sql.Named("style", style),
		).Scan(&w, &h, &compressed)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		} else if err != nil {
			return fmt.Errorf("could not query the database: %w", err)
		}
		return nil
	}

	if err := s.db.executeDBJobAndWait(ctx, work); err != nil {
		return nil, err
	}

	cells, err := s.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing grid: %w", err)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("stored grid has %d cells, expected %dx%d", len(cells), w, h)
	}

	g := grid.New(w, h)
	for i, c := range cells {
		g.Cells[i] = palette.Symbol(c)
	}

	return g, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	work := func(db *sql.DB) error {
		n, err := deleteJobs(db, `WHERE id = @id`, sql.Named("id", id))
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}

	err := s.db.executeDBJobAndWait(ctx, work)
	if err != nil {
		return err
	}

	if err := s.files.Remove(s.inputPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing uploaded image: %w", err)
	}

	return nil
}

// PruneBefore implements Store.
func (s *SQLiteStore) PruneBefore(ctx context.Context, t time.Time) (int64, error) {
	var ids []string

	work := func(db *sql.DB) error {
		rows, err := db.Query(`
			SELECT id FROM jobs WHERE created_at < @before
		`, sql.Named("before", t.Unix()))
		if err != nil {
			return fmt.Errorf("could not query the database: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return fmt.Errorf("scanning db failed: %w", err)
			}
			ids = append(ids, id)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating over jobs: %w", err)
		}
		rows.Close()

		_, err = deleteJobs(db, `WHERE created_at < @before`, sql.Named("before", t.Unix()))
		return err
	}

	if err := s.db.executeDBJobAndWait(ctx, work); err != nil {
		return 0, err
	}

	for _, id := range ids {
		if err := s.files.Remove(s.inputPath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return int64(len(ids)), fmt.Errorf("removing uploaded image: %w", err)
		}
	}

	return int64(len(ids)), nil
}

// deleteJobs removes the jobs matching the where clause together with their
// results in a single transaction. It returns the number of removed jobs.
func deleteJobs(db *sql.DB, where string, args ...any) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}

	_, err = tx.Exec(`
		DELETE FROM job_results
		WHERE job_id IN (SELECT id FROM jobs `+where+`)
	`, args...)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("deleting job results: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM jobs `+where, args...)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("deleting jobs: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("counting deleted jobs: %w", err)
	}

	return n, tx.Commit()
}
