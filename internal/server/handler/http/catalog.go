package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/FotoShop/internal/models"
)

type CatalogService interface {
	ListImages(ctx context.Context) ([]models.Image, error)
}

type CatalogHandler struct {
	CatalogService CatalogService
}

// List handles GET /fotos.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	images, err := h.CatalogService.ListImages(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Envelope[[]models.Image]{
		Success: true,
		Message: "ok",
		Data:    images,
	})
}
