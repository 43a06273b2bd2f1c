package dither

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tessella/tessella/src/colorspace"
	"github.com/tessella/tessella/src/grid"
	"github.com/tessella/tessella/src/palette"
)

// Apply quantizes buf to symbols of pal. The strength scales both the Bayer
// thresholds and the diffused error and is normally in [0, 1]. The result is
// deterministic for the same arguments.
func Apply(buf *grid.PixelBuffer, pal *palette.Palette, m Method, strength float64) *grid.Grid {
	g, _ := ApplyContext(context.Background(), buf, pal, m, strength)
	return g
}

// ApplyContext is like Apply but stops early with the context's error when ctx
// is cancelled.
func ApplyContext(
	ctx context.Context,
	buf *grid.PixelBuffer,
	pal *palette.Palette,
	m Method,
	strength float64,
) (*grid.Grid, error) {
	switch m {
	case None:
		return mapRows(ctx, buf, func(x, y int, c colorspace.RGB) palette.Symbol {
			s, _ := pal.Nearest(c)
			return s
		})
	case Ordered:
		thresholds := bayerThresholds(float32(strength))
		return mapRows(ctx, buf, func(x, y int, c colorspace.RGB) palette.Symbol {
			t := thresholds[y%8][x%8]
			s, _ := pal.Nearest(colorspace.RGB{
				R: clipChannel(float32(c.R) + t),
				G: clipChannel(float32(c.G) + t),
				B: clipChannel(float32(c.B) + t),
			})
			return s
		})
	}

	kernel, ok := m.Kernel()
	if !ok {
		kernel = kernels[FloydSteinberg]
	}
	return diffuse(ctx, buf, pal, kernel, float32(strength))
}

// mapRows quantizes every pixel independently. Rows are split in bands between
// several goroutines.
func mapRows(
	ctx context.Context,
	buf *grid.PixelBuffer,
	match func(x, y int, c colorspace.RGB) palette.Symbol,
) (*grid.Grid, error) {
	out := grid.New(buf.W, buf.H)
	if buf.H == 0 || buf.W == 0 {
		return out, nil
	}

	workers := runtime.NumCPU()
	if workers > buf.H {
		workers = buf.H
	}
	band := (buf.H + workers - 1) / workers

	errg, ctx := errgroup.WithContext(ctx)
	for start := 0; start < buf.H; start += band {
		start := start
		end := min(start+band, buf.H)

		errg.Go(func() error {
			for y := start; y < end; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for x := 0; x < buf.W; x++ {
					out.Set(x, y, match(x, y, buf.At(x, y)))
				}
			}
			return nil
		})
	}

	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// diffuse runs error diffusion in raster order over a float32 working copy
// of buf.
func diffuse(
	ctx context.Context,
	buf *grid.PixelBuffer,
	pal *palette.Palette,
	kernel Kernel,
	strength float32,
) (*grid.Grid, error) {
	w, h := buf.W, buf.H
	out := grid.New(w, h)

	work := make([]float32, 3*w*h)
	for i, c := range buf.Pix {
		work[i*3] = float32(c.R)
		work[i*3+1] = float32(c.G)
		work[i*3+2] = float32(c.B)
	}

	factors := make([]float32, len(kernel.Taps))
	for i, tap := range kernel.Taps {
		factors[i] = float32(tap.Weight) / float32(kernel.Divisor)
	}

	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			old := colorspace.RGB{
				R: clipChannel(work[i]),
				G: clipChannel(work[i+1]),
				B: clipChannel(work[i+2]),
			}

			sym, idx := pal.Nearest(old)
			out.Set(x, y, sym)

			target := pal.Entry(idx).RGB
			er := (float32(old.R) - float32(target.R)) * strength
			eg := (float32(old.G) - float32(target.G)) * strength
			eb := (float32(old.B) - float32(target.B)) * strength

			if er == 0 && eg == 0 && eb == 0 {
				continue
			}

			for t, tap := range kernel.Taps {
				nx, ny := x+tap.DX, y+tap.DY
				if nx < 0 || nx >= w || ny >= h {
					continue
				}

				j := (ny*w + nx) * 3
				work[j] += er * factors[t]
				work[j+1] += eg * factors[t]
				work[j+2] += eb * factors[t]
			}
		}
	}

	return out, nil
}

// clipChannel clamps v to [0, 255] and truncates it.
func clipChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
