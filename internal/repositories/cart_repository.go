package repositories

import (
	"errors"
	"fmt"

	"smartshop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository handles cart lines. Quantity changes and the cleanup of
// depleted lines run inside ExecuteInTransaction so a line with quantity
// <= 0 is never observable from another request.
type CartRepository interface {
	ItemsByUser(userID uint) ([]models.CartItem, error)
	// GetByNameForUpdate locks the matching line for the remainder of the
	// surrounding transaction. Returns gorm.ErrRecordNotFound when absent.
	GetByNameForUpdate(userID uint, name string) (*models.CartItem, error)
	Create(item *models.CartItem) error
	AddQuantity(userID, itemID uint, delta int) error
	DeleteDepleted(userID uint) error
	Delete(userID, itemID uint) error
	ExecuteInTransaction(fn func(CartRepository) error) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ItemsByUser(userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	return items, nil
}

func (r *cartRepository) GetByNameForUpdate(userID uint, name string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND name = ?", userID, name).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock cart item: %w", err)
	}
	return &item, nil
}

func (r *cartRepository) Create(item *models.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) AddQuantity(userID, itemID uint, delta int) error {
	err := r.db.Model(&models.CartItem{}).
		Where("user_id = ? AND id = ?", userID, itemID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
	if err != nil {
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	return nil
}

func (r *cartRepository) DeleteDepleted(userID uint) error {
	err := r.db.Where("user_id = ? AND quantity <= 0", userID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete depleted cart items: %w", err)
	}
	return nil
}

func (r *cartRepository) Delete(userID, itemID uint) error {
	// Idempotent: deleting a missing id is not an error.
	err := r.db.Where("user_id = ? AND id = ?", userID, itemID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

func (r *cartRepository) ExecuteInTransaction(fn func(CartRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&cartRepository{db: tx})
	})
}
