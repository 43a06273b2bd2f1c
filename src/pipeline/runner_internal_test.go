package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
)

// TestWorkerProcessContexts makes sure a job stops when either the caller's
// or the runner's context is done.
func TestWorkerProcessContexts(t *testing.T) {
	pal, err := palette.DefaultRegistry().Get(palette.DefaultName)
	if err != nil {
		t.Fatalf("getting palette: %s", err)
	}

	req := Request{
		Source:  grid.NewPixelBuffer(10, 10),
		Palette: pal,
		Options: DefaultOptions(),
		Tiles:   DefaultTileSize(),
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		desc      string
		runnerCtx context.Context
		callerCtx context.Context
	}{
		{
			desc:      "caller went away",
			runnerCtx: context.Background(),
			callerCtx: cancelled,
		},
		{
			desc:      "runner stopped",
			runnerCtx: cancelled,
			callerCtx: context.Background(),
		},
	}

	r := &Runner{}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := r.process(test.runnerCtx, job{ctx: test.callerCtx, req: req})
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled but got %v", err)
			}
		})
	}

	res, err := r.process(context.Background(), job{ctx: context.Background(), req: req})
	if err != nil {
		t.Fatalf("processing with live contexts: %s", err)
	}
	if res.Counts.Total() != 100 {
		t.Errorf("expected 100 counted cells but got %d", res.Counts.Total())
	}
}
