package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
)

// ErrCancelled is returned when one is trying to interact with a stopped
// runner.
var ErrCancelled = fmt.Errorf("pipeline operation on cancelled Runner")

// job is a processing instruction.
type job struct {
	// ctx is the caller's context. The job is abandoned once it is done.
	ctx context.Context
	req Request

	// result is the channel on which the result is returned. It is buffered
	// so that workers never block on callers which went away.
	result chan jobResult
}

type jobResult struct {
	res *Result
	err error
}

// Runner processes requests on a fixed pool of workers, one per CPU.
type Runner struct {
	ctx           context.Context
	cancelContext context.CancelFunc
	stopped       atomic.Bool
	errg          *errgroup.Group

	work chan job
}

// NewRunner returns a new runner, ready for use. It stops when ctx is done
// or Cancel is called.
func NewRunner(ctx context.Context) *Runner {
	ctx, cancel := context.WithCancel(ctx)

	r := &Runner{
		cancelContext: cancel,
		work:          make(chan job),
	}

	g, gctx := errgroup.WithContext(ctx)
	r.ctx = gctx
	r.errg = g

	g.Go(r.watchCtx(gctx))
	for i := 0; i < runtime.NumCPU(); i++ {
		g.Go(r.worker(gctx))
	}

	return r
}

// Run processes req on one of the workers.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if r.stopped.Load() {
		return nil, ErrCancelled
	}

	j := job{
		ctx:    ctx,
		req:    req,
		result: make(chan jobResult, 1),
	}

	select {
	case r.work <- j:
	case <-r.ctx.Done():
		return nil, ErrCancelled
	case <-ctx.Done():
		return nil, fmt.Errorf("ctx done while waiting to send pipeline job: %w", ctx.Err())
	}

	select {
	case res := <-j.result:
		return res.res, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("ctx done while waiting for pipeline result: %w", ctx.Err())
	}
}

// RunStyles processes the same source with several palettes in parallel. The
// results are in the order of the palettes.
func (r *Runner) RunStyles(
	ctx context.Context,
	source *grid.PixelBuffer,
	palettes []*palette.Palette,
	opts Options,
	tiles TileSize,
) ([]*Result, error) {
	results := make([]*Result, len(palettes))

	g, gctx := errgroup.WithContext(ctx)
	for i, pal := range palettes {
		i, pal := i, pal
		g.Go(func() error {
			res, err := r.Run(gctx, Request{
				Source:  source,
				Palette: pal,
				Options: opts,
				Tiles:   tiles,
			})
			if err != nil {
				return fmt.Errorf("style %s: %w", pal.Name(), err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *Runner) worker(ctx context.Context) func() error {
	return func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case j := <-r.work:
				res, err := r.process(ctx, j)
				j.result <- jobResult{res: res, err: err}
			}
		}
	}
}

// process runs j until it is done or either the runner's or the caller's
// context is done.
func (r *Runner) process(runnerCtx context.Context, j job) (*Result, error) {
	if err := runnerCtx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(j.ctx)
	defer cancel()

	stop := context.AfterFunc(runnerCtx, cancel)
	defer stop()

	return Process(ctx, j.req)
}

func (r *Runner) watchCtx(ctx context.Context) func() error {
	// Marks the runner as stopped as soon as its context is done. The
	// workers watch the same context and return on their own.
	return func() error {
		<-ctx.Done()
		r.stopped.Store(true)
		return nil
	}
}

// Cancel stops the runner and all of its workers. Users may not use any
// further methods on cancelled runners.
func (r *Runner) Cancel() {
	r.stopped.Store(true)
	r.cancelContext()
}

// Wait blocks until all workers have returned after a Cancel.
func (r *Runner) Wait() {
	_ = r.errg.Wait()
}
