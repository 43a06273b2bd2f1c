package palette

import (
	"fmt"
	"sync"

	"github.com/tessella/tessella/src/colorspace"
)

// DefaultName is the palette used when a request does not name one.
const DefaultName = "original"

// Registry is a read-only, ordered collection of named palettes.
type Registry struct {
	order []string
	byKey map[string]*Palette
}

// NewRegistry returns a registry holding palettes in the given order. Names
// must be unique.
func NewRegistry(palettes ...*Palette) (*Registry, error) {
	r := &Registry{
		byKey: make(map[string]*Palette, len(palettes)),
	}

	for _, p := range palettes {
		if _, ok := r.byKey[p.Name()]; ok {
			return nil, fmt.Errorf("palette %q registered twice", p.Name())
		}
		r.byKey[p.Name()] = p
		r.order = append(r.order, p.Name())
	}

	return r, nil
}

// Get returns the palette with the given name.
func (r *Registry) Get(name string) (*Palette, error) {
	p, ok := r.byKey[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return p, nil
}

// Names returns the palette names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns the palettes in registration order.
func (r *Registry) All() []*Palette {
	out := make([]*Palette, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byKey[name])
	}
	return out
}

var builtin = []struct {
	name   string
	space  colorspace.Space
	colors []Color
}{
	{
		name:  "original",
		space: colorspace.OKLab,
		colors: []Color{
			{1, "Black", "#141414"},
			{2, "DarkGray", "#3B4752"},
			{3, "MidGray", "#6B7C88"},
			{4, "LightGray", "#9FACB7"},
			{5, "Highlight", "#D6DFE6"},
			{6, "SoftSkin", "#C79A7A"},
			{7, "AccentBrown", "#8C5A3C"},
		},
	},
	{
		name:  "warm",
		space: colorspace.OKLab,
		colors: []Color{
			{1, "DeepUmber", "#1E140E"},
			{2, "DarkCocoa", "#493326"},
			{3, "Walnut", "#7A563F"},
			{4, "Caramel", "#A67A5E"},
			{5, "Sand", "#D1B69A"},
			{6, "Pearl", "#EFE6D8"},
			{7, "ShadowBlue", "#3C4C59"},
		},
	},
	{
		name:  "pop",
		space: colorspace.OKLab,
		colors: []Color{
			{1, "Ink", "#101010"},
			{2, "SolarYellow", "#F4D03F"},
			{3, "TangyRed", "#E74C3C"},
			{4, "Azure", "#3498DB"},
			{5, "SpringGreen", "#2ECC71"},
			{6, "Amethyst", "#9B59B6"},
			{7, "Highlight", "#F1F1F1"},
		},
	},
}

// The classic set matches in CIELAB. Colors are shared with the palettes above.
var classic = map[string]string{
	"classic": "original",
	"vintage": "warm",
	"popart":  "pop",
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the built in palettes. It is built once and shared.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		var all []*Palette
		byName := make(map[string][]Color)

		for _, def := range builtin {
			all = append(all, mustNew(def.name, def.space, def.colors))
			byName[def.name] = def.colors
		}

		for _, name := range []string{"classic", "vintage", "popart"} {
			all = append(all, mustNew(name, colorspace.CIELAB, byName[classic[name]]))
		}

		r, err := NewRegistry(all...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})

	return defaultRegistry
}

func mustNew(name string, space colorspace.Space, colors []Color) *Palette {
	p, err := New(name, space, colors)
	if err != nil {
		panic(fmt.Sprintf("built in palette: %s", err))
	}
	return p
}
