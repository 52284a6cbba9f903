package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"worldmark/internal/api/response"
	"worldmark/internal/palette"
)

// PaletteHandler handles colour palette endpoints
type PaletteHandler struct {
	colours *palette.Catalog
}

// NewPaletteHandler creates a new palette handler
func NewPaletteHandler(colours *palette.Catalog) *PaletteHandler {
	return &PaletteHandler{
		colours: colours,
	}
}

// List handles GET /api/v1/palettes
func (h *PaletteHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.colours.Names()
	out := make([]response.Palette, 0, len(names))
	for _, name := range names {
		out = append(out, response.Palette{
			Name:    name,
			Colours: h.colours.Colours(name),
		})
	}
	response.JSON(w, http.StatusOK, out)
}

// Get handles GET /api/v1/palettes/{name}
func (h *PaletteHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	colours := h.colours.Colours(name)
	if colours == nil {
		WriteError(w, NewInvalidRequestError("unknown palette: "+name))
		return
	}

	response.JSON(w, http.StatusOK, response.Palette{Name: name, Colours: colours})
}

// Colours handles GET /api/v1/colours. Returns every colour across all
// palettes in picker order.
func (h *PaletteHandler) Colours(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.colours.AllColours())
}
