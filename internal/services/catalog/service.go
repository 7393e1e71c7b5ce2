// Package catalog serves the read-only product catalog.
package catalog

import (
	"context"
	"fmt"

	"smartshop/internal/models"
	"smartshop/internal/repositories"
)

type Service interface {
	// ListProducts returns catalog entries whose category matches
	// exactly, in insertion order. Unknown categories yield an empty
	// slice, not an error.
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
}

type service struct {
	repo repositories.ProductRepository
}

func NewService(repo repositories.ProductRepository) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(_ context.Context, category string) ([]models.Product, error) {
	products, err := s.repo.ByCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
