package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/FotoShop/internal/models"
)

// PostgresCatalogRepository reads the image catalog.
type PostgresCatalogRepository struct {
	DB *sql.DB
}

func NewPostgresCatalogRepository(db *sql.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{DB: db}
}

// ActiveImages returns every active image ordered by id. The free-text
// category and the category_id foreign key are returned as stored.
func (r *PostgresCatalogRepository) ActiveImages(ctx context.Context) ([]models.Image, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, description, price, stock, category, category_id, image_url, active, created_at
		  FROM images WHERE active = true ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("ActiveImages: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		var (
			img        models.Image
			categoryID sql.NullInt64
		)
		if err := rows.Scan(&img.ID, &img.Title, &img.Description, &img.Price, &img.Stock,
			&img.Category, &categoryID, &img.ImageURL, &img.Active, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if categoryID.Valid {
			id := categoryID.Int64
			img.CategoryID = &id
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ActiveImages: %w", err)
	}
	return images, nil
}
