// Package jobs stores uploaded photos and the grids generated from them so
// that a preview can later be turned into a full export pack.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pborman/uuid"

	"github.com/tessella/tessella/src/grid"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// ErrNotFound is returned when a job or a result for it does not exist.
var ErrNotFound = errors.New("job not found")

// Job is one uploaded photo together with the request it was uploaded with.
type Job struct {
	ID        string
	CreatedAt time.Time

	// InputFormat is the image format name of the upload, e.g. "jpeg".
	InputFormat string

	GridW int
	GridH int

	// Payload is the preview request as sent by the client.
	Payload json.RawMessage
}

// NewID returns a new random job ID.
func NewID() string {
	return uuid.New()
}

//counterfeiter:generate . Store

// Store keeps jobs, their inputs and their results.
type Store interface {
	// Create saves a new job with the uploaded image data.
	Create(ctx context.Context, job Job, input []byte) error

	// Get returns the job with the given ID.
	Get(ctx context.Context, id string) (Job, error)

	// Input returns the uploaded image data of a job.
	Input(ctx context.Context, id string) ([]byte, error)

	// SaveResult stores the grid generated for a job with a palette.
	// A previously stored grid for the same style is replaced.
	SaveResult(ctx context.Context, id, style string, g *grid.Grid) error

	// Result returns a grid stored with SaveResult.
	Result(ctx context.Context, id, style string) (*grid.Grid, error)

	// Delete removes a job with its input and all results.
	Delete(ctx context.Context, id string) error

	// PruneBefore removes all jobs created before t and returns how
	// many were removed.
	PruneBefore(ctx context.Context, t time.Time) (int64, error)
}
