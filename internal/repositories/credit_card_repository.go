package repositories

import (
	"fmt"

	"smartshop/internal/models"

	"gorm.io/gorm"
)

// CreditCardRepository handles stored card records.
type CreditCardRepository interface {
	Create(card *models.CreditCard) error
	ByUser(userID uint) ([]models.CreditCard, error)
	// DeleteOwned removes the card only when it belongs to the user. The
	// ownership check is part of the delete query itself; deleting a card
	// that does not exist (or is not owned) is a no-op.
	DeleteOwned(userID, cardID uint) error
}

type creditCardRepository struct {
	db *gorm.DB
}

func NewCreditCardRepository(db *gorm.DB) CreditCardRepository {
	return &creditCardRepository{db: db}
}

func (r *creditCardRepository) Create(card *models.CreditCard) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to save card: %w", err)
	}
	return nil
}

func (r *creditCardRepository) ByUser(userID uint) ([]models.CreditCard, error) {
	var cards []models.CreditCard
	err := r.db.Where("user_id = ?", userID).
		Order("is_default DESC").
		Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	return cards, nil
}

func (r *creditCardRepository) DeleteOwned(userID, cardID uint) error {
	err := r.db.Where("id = ? AND user_id = ?", cardID, userID).
		Delete(&models.CreditCard{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
