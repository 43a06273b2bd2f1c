package colorspace

import "math"

// RGBToOKLab converts an sRGB color into OKLab coordinates.
func RGBToOKLab(c RGB) Lab {
	r, g, b := ToLinear(c.R), ToLinear(c.G), ToLinear(c.B)

	l := 0.4122214708*r + 0.5363325363*g + 0.0514459929*b
	m := 0.2119034982*r + 0.6806995451*g + 0.1073969566*b
	s := 0.0883024619*r + 0.2817188376*g + 0.6299787005*b

	// math.Cbrt keeps the sign of its argument.
	l, m, s = math.Cbrt(l), math.Cbrt(m), math.Cbrt(s)

	return Lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// OKLabToRGB converts OKLab coordinates back into sRGB. Out of gamut values
// are clamped.
func OKLabToRGB(p Lab) RGB {
	l := p.L + 0.3963377774*p.A + 0.2158037573*p.B
	m := p.L - 0.1055613458*p.A - 0.0638541728*p.B
	s := p.L - 0.0894841775*p.A - 1.2914855480*p.B

	l, m, s = l*l*l, m*m*m, s*s*s

	r := 4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	b := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	return RGB{
		R: toByte(ToSRGB(r)),
		G: toByte(ToSRGB(g)),
		B: toByte(ToSRGB(b)),
	}
}
