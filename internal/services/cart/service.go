// Package cart implements per-user shopping cart operations.
package cart

import (
	"context"
	"errors"
	"fmt"

	"smartshop/internal/models"
	"smartshop/internal/repositories"

	"gorm.io/gorm"
)

var ErrInvalidItem = errors.New("item name is required")

type Service interface {
	// Add puts one unit of the named product into the user's cart. A
	// line with the same name gets its quantity incremented; its stored
	// price and image stay untouched.
	Add(ctx context.Context, userID uint, name string, price int, img string) error
	// Items returns the user's cart lines.
	Items(ctx context.Context, userID uint) ([]models.CartItem, error)
	// Adjust adds delta (possibly negative) to a line's quantity and
	// removes any of the user's lines left at quantity <= 0, atomically.
	Adjust(ctx context.Context, userID, itemID uint, delta int) error
	// Remove deletes a line unconditionally. Missing ids are a no-op.
	Remove(ctx context.Context, userID, itemID uint) error
}

type service struct {
	repo repositories.CartRepository
}

func NewService(repo repositories.CartRepository) Service {
	return &service{repo: repo}
}

func (s *service) Add(_ context.Context, userID uint, name string, price int, img string) error {
	if name == "" {
		return ErrInvalidItem
	}
	return s.repo.ExecuteInTransaction(func(tx repositories.CartRepository) error {
		existing, err := tx.GetByNameForUpdate(userID, name)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.CartItem{
				UserID:   userID,
				Name:     name,
				Price:    price,
				Img:      img,
				Quantity: 1,
			})
		}
		if err != nil {
			return err
		}
		return tx.AddQuantity(userID, existing.ID, 1)
	})
}

func (s *service) Items(_ context.Context, userID uint) ([]models.CartItem, error) {
	items, err := s.repo.ItemsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	return items, nil
}

func (s *service) Adjust(_ context.Context, userID, itemID uint, delta int) error {
	return s.repo.ExecuteInTransaction(func(tx repositories.CartRepository) error {
		if err := tx.AddQuantity(userID, itemID, delta); err != nil {
			return err
		}
		return tx.DeleteDepleted(userID)
	})
}

func (s *service) Remove(_ context.Context, userID, itemID uint) error {
	return s.repo.Delete(userID, itemID)
}
