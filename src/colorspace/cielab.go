package colorspace

import "math"

// D65 reference white, 2 degree observer.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

const labDelta = 6.0 / 29.0

// RGBToLab converts an sRGB color into CIELAB coordinates.
func RGBToLab(c RGB) Lab {
	r, g, b := ToLinear(c.R), ToLinear(c.G), ToLinear(c.B)

	x := 0.4124564*r + 0.3575761*g + 0.1804375*b
	y := 0.2126729*r + 0.7151522*g + 0.0721750*b
	z := 0.0193339*r + 0.1191920*g + 0.9503041*b

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToRGB converts CIELAB coordinates back into sRGB. Out of gamut values
// are clamped.
func LabToRGB(p Lab) RGB {
	fy := (p.L + 16) / 116
	fx := fy + p.A/500
	fz := fy - p.B/200

	x := whiteX * labFInv(fx)
	y := whiteY * labFInv(fy)
	z := whiteZ * labFInv(fz)

	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	b := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return RGB{
		R: toByte(ToSRGB(r)),
		G: toByte(ToSRGB(g)),
		B: toByte(ToSRGB(b)),
	}
}

func labF(t float64) float64 {
	if t > labDelta*labDelta*labDelta {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}
