// Package preprocess prepares an uploaded photo for quantization: rotation,
// cropping, tone and noise filters and finally resizing to the grid size.
package preprocess

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/gift"
)

// Denoise methods. The names are the ones clients send. Both map to filters
// with a similar effect.
const (
	DenoiseBilateral = "bilateral"
	DenoiseNLM       = "nlm"
	DenoiseNone      = "none"
)

// ErrInvalidOptions is wrapped by all option validation errors.
var ErrInvalidOptions = errors.New("invalid processing options")

// Options control the filters applied before quantization.
type Options struct {
	Gamma           float64 `json:"gamma"`
	AutoContrast    bool    `json:"auto_contrast"`
	ClaheClip       float64 `json:"clahe_clip"`
	Denoise         string  `json:"denoise"`
	DenoiseStrength float64 `json:"denoise_strength"`
	EdgeBoost       float64 `json:"edge_boost"`
	BackgroundDesat float64 `json:"background_desat"`
}

// DefaultOptions returns the options used when a client sends none.
func DefaultOptions() Options {
	return Options{
		Gamma:           1.0,
		AutoContrast:    true,
		ClaheClip:       2.0,
		Denoise:         DenoiseBilateral,
		DenoiseStrength: 1.0,
		EdgeBoost:       0.3,
		BackgroundDesat: 0.15,
	}
}

// Validate checks that all options are within their allowed ranges.
func (o Options) Validate() error {
	checks := []struct {
		name     string
		val      float64
		min, max float64
	}{
		{"gamma", o.Gamma, 0.5, 2},
		{"clahe_clip", o.ClaheClip, 1, 4},
		{"denoise_strength", o.DenoiseStrength, 0, 2},
		{"edge_boost", o.EdgeBoost, 0, 0.5},
		{"background_desat", o.BackgroundDesat, 0, 0.3},
	}

	for _, c := range checks {
		if c.val < c.min || c.val > c.max {
			return fmt.Errorf("%w: %s must be in [%g, %g], got %g",
				ErrInvalidOptions, c.name, c.min, c.max, c.val)
		}
	}

	switch o.Denoise {
	case DenoiseBilateral, DenoiseNLM, DenoiseNone:
	default:
		return fmt.Errorf("%w: unknown denoise method %q", ErrInvalidOptions, o.Denoise)
	}

	return nil
}

// Filters returns the filter chain for the options. The order is contrast,
// gamma, denoise, background desaturation and finally sharpening.
func Filters(o Options) *gift.GIFT {
	g := gift.New()

	if o.AutoContrast {
		g.Add(gift.Contrast(float32(o.ClaheClip * 5)))
	}

	if o.Gamma != 1.0 {
		g.Add(gift.Gamma(float32(o.Gamma)))
	}

	switch o.Denoise {
	case DenoiseBilateral:
		if size := oddSize(3 * o.DenoiseStrength); size > 1 {
			g.Add(gift.Median(size, true))
		}
	case DenoiseNLM:
		if o.DenoiseStrength > 0 {
			g.Add(gift.GaussianBlur(float32(0.6 * o.DenoiseStrength)))
		}
	}

	if o.BackgroundDesat > 0 {
		g.Add(backgroundDesaturation(float32(o.BackgroundDesat)))
	}

	if o.EdgeBoost > 0 {
		g.Add(gift.UnsharpMask(1.5, float32(o.EdgeBoost), 0))
	}

	return g
}

// Apply runs the filter chain of o over img.
func Apply(img image.Image, o Options) *image.NRGBA {
	g := Filters(o)
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// backgroundDesaturation lowers the saturation of pixels outside of the
// skin tone range by amount.
func backgroundDesaturation(amount float32) gift.Filter {
	return gift.ColorFunc(func(r, g, b, a float32) (float32, float32, float32, float32) {
		if isSkin(r, g, b) {
			return r, g, b, a
		}

		lum := 0.299*r + 0.587*g + 0.114*b
		keep := 1 - amount
		return lum + (r-lum)*keep, lum + (g-lum)*keep, lum + (b-lum)*keep, a
	})
}

// isSkin reports whether the color falls in the usual Cb/Cr skin range.
func isSkin(r, g, b float32) bool {
	_, cb, cr := color.RGBToYCbCr(
		uint8(r*255+0.5),
		uint8(g*255+0.5),
		uint8(b*255+0.5),
	)
	return cb >= 77 && cb <= 127 && cr >= 133 && cr <= 173
}

func oddSize(v float64) int {
	n := int(v)
	if n%2 == 0 {
		n--
	}
	return n
}
