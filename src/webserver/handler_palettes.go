package webserver

import (
	"net/http"

	"github.com/tessella/tessella/src/palette"
)

type healthHandler struct{}

// NewHealthHandler returns a handler which always responds with `{"ok":true}`.
// It is used by load balancers and is exempt from authentication.
func NewHealthHandler() http.Handler {
	return healthHandler{}
}

func (healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{
		OK: true,
	})
}

type palettesHandler struct {
	palettes *palette.Registry
}

// NewPalettesHandler returns a handler which lists every palette which may
// be used as a style.
func NewPalettesHandler(palettes *palette.Registry) http.Handler {
	return &palettesHandler{palettes: palettes}
}

type paletteJSON struct {
	ID     string      `json:"id"`
	Space  string      `json:"space"`
	Colors []colorJSON `json:"colors"`
}

type colorJSON struct {
	Symbol  int    `json:"symbol"`
	Name    string `json:"name,omitempty"`
	Hex     string `json:"hex"`
	BagCode string `json:"bag_code"`
}

func (h *palettesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		Palettes []paletteJSON `json:"palettes"`
	}{
		Palettes: []paletteJSON{},
	}

	for _, pal := range h.palettes.All() {
		resp.Palettes = append(resp.Palettes, paletteToJSON(pal))
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func paletteToJSON(pal *palette.Palette) paletteJSON {
	p := paletteJSON{
		ID:    pal.Name(),
		Space: pal.Space().String(),
	}
	for _, e := range pal.Entries() {
		p.Colors = append(p.Colors, colorJSON{
			Symbol:  int(e.Symbol),
			Name:    e.Name,
			Hex:     e.Hex,
			BagCode: palette.BagCode(e.Symbol),
		})
	}
	return p
}
