package repositories

import (
	"fmt"

	"smartshop/internal/models"

	"gorm.io/gorm"
)

// ProductRepository reads the seeded catalog.
type ProductRepository interface {
	ByCategory(category string) ([]models.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// ByCategory returns products matching the category exactly, in insertion
// order. An unknown category yields an empty slice.
func (r *productRepository) ByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", category).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}
