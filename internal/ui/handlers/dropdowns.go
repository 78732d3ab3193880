package handlers

import (
	"net/http"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/client"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/templates"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
)

type HandlerService struct {
	ApiClient     *client.Client
	Environment   string
	ImagePatterns []types.RemoteImagePattern
}

// RenderCarPartOptions renders the car part dropdown options. The optional "selected" query parameter marks the current value.
func (h *HandlerService) RenderCarPartOptions(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("selected")

	h.render(w, r, templates.CarPartOptions(types.CarParts(), selected), "CarPartOptions")
}
