// Package dither quantizes a pixel buffer into a symbol grid using one of a
// fixed set of methods: direct mapping, ordered Bayer thresholding or error
// diffusion with one of four classic kernels.
package dither

import "strings"

// Method is one of the supported dithering methods.
type Method int

const (
	// FloydSteinberg is the default method.
	FloydSteinberg Method = iota
	JarvisJudiceNinke
	Stucki
	Atkinson
	Ordered
	None
)

var methodNames = map[Method]string{
	FloydSteinberg:    "floyd-steinberg",
	JarvisJudiceNinke: "jarvis-judice-ninke",
	Stucki:            "stucki",
	Atkinson:          "atkinson",
	Ordered:           "bayer",
	None:              "none",
}

var methodAliases = map[string]Method{
	"floyd-steinberg":     FloydSteinberg,
	"fs":                  FloydSteinberg,
	"jarvis-judice-ninke": JarvisJudiceNinke,
	"jjn":                 JarvisJudiceNinke,
	"stucki":              Stucki,
	"atkinson":            Atkinson,
	"bayer":               Ordered,
	"ordered":             Ordered,
	"none":                None,
}

// ParseMethod returns the method with the given name. Names are case
// insensitive. An unknown name gives FloydSteinberg and false.
func ParseMethod(name string) (Method, bool) {
	m, ok := methodAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FloydSteinberg, false
	}
	return m, true
}

// Methods returns all methods in their canonical order.
func Methods() []Method {
	return []Method{FloydSteinberg, JarvisJudiceNinke, Stucki, Atkinson, Ordered, None}
}

// String returns the canonical name of the method.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "unknown"
}

// Kernel returns the error diffusion kernel of the method. The second value
// is false for methods which do not diffuse error.
func (m Method) Kernel() (Kernel, bool) {
	k, ok := kernels[m]
	return k, ok
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names fall back
// to FloydSteinberg without an error.
func (m *Method) UnmarshalText(text []byte) error {
	*m, _ = ParseMethod(string(text))
	return nil
}
