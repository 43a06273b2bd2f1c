// Package colorspace converts 8-bit sRGB colors to and from perceptually
// uniform coordinate spaces and measures distances between them.
//
// Two spaces are supported. CIELAB uses the D65 reference white with the
// 2 degree observer. OKLab is the default one for all palettes created
// after the classic set.
package colorspace

import (
	"fmt"
	"math"
)

// RGB is an 8-bit per channel sRGB color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color in "#rrggbb" notation.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lab is a point in one of the perceptual spaces. For CIELAB L is in
// [0, 100]. For OKLab it is in [0, 1].
type Lab struct {
	L, A, B float64
}

// Space selects the perceptual space used for matching and measuring.
type Space int

const (
	// OKLab is the default perceptual space.
	OKLab Space = iota

	// CIELAB is the CIE 1976 L*a*b* space with D65 white.
	CIELAB
)

// String implements fmt.Stringer.
func (s Space) String() string {
	switch s {
	case CIELAB:
		return "cielab"
	default:
		return "oklab"
	}
}

// ParseSpace returns the space for its string name. Unknown names
// result in OKLab and false.
func ParseSpace(name string) (Space, bool) {
	switch name {
	case "oklab", "":
		return OKLab, true
	case "cielab", "lab":
		return CIELAB, true
	}
	return OKLab, false
}

// ToPerceptual converts c into the space s.
func (s Space) ToPerceptual(c RGB) Lab {
	if s == CIELAB {
		return RGBToLab(c)
	}
	return RGBToOKLab(c)
}

// FromPerceptual converts the point p from the space s back to sRGB.
func (s Space) FromPerceptual(p Lab) RGB {
	if s == CIELAB {
		return LabToRGB(p)
	}
	return OKLabToRGB(p)
}

// Distance is the Euclidean distance between two points of the same space.
func Distance(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// ToLinear decodes a gamma encoded sRGB channel into linear light in [0, 1].
func ToLinear(c uint8) float64 {
	v := float64(c) / 255
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ToSRGB encodes linear light into a gamma encoded value in [0, 1]. The
// result is not clamped.
func ToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return 12.92 * l
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// toByte clamps v, given in [0, 1], to a channel value rounded to the nearest
// integer.
func toByte(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
