package service

import (
	"context"

	"github.com/atinyakov/FotoShop/internal/models"
)

// CatalogRepository reads the images on sale.
type CatalogRepository interface {
	ActiveImages(ctx context.Context) ([]models.Image, error)
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListImages returns the active images.
func (s *CatalogService) ListImages(ctx context.Context) ([]models.Image, error) {
	return s.repo.ActiveImages(ctx)
}
