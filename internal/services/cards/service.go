// Package cards manages stored payment cards. Only the last four digits
// and card metadata are persisted; the full PAN is used transiently for
// validation and network inference, and a CVV is never accepted at all.
package cards

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"smartshop/internal/models"
	"smartshop/internal/repositories"
)

var ErrInvalidCardNumber = errors.New("invalid card number")

type Service interface {
	AddCard(ctx context.Context, userID uint, input models.CreateCardInput) (*models.CreditCard, error)
	ListCards(ctx context.Context, userID uint) ([]models.CreditCard, error)
	// DeleteCard removes the card only if it belongs to the user; missing
	// or foreign ids are a no-op.
	DeleteCard(ctx context.Context, userID, cardID uint) error
}

type service struct {
	repo repositories.CreditCardRepository
}

func NewService(repo repositories.CreditCardRepository) Service {
	return &service{repo: repo}
}

func (s *service) AddCard(_ context.Context, userID uint, input models.CreateCardInput) (*models.CreditCard, error) {
	number := strings.ReplaceAll(input.CardNumber, " ", "")
	if len(number) < 13 || len(number) > 19 {
		return nil, ErrInvalidCardNumber
	}

	card := &models.CreditCard{
		UserID:         userID,
		LastFour:       number[len(number)-4:],
		CardHolderName: input.CardHolderName,
		ExpiryDate:     input.ExpiryDate,
		CardType:       CardNetwork(number),
	}
	if err := s.repo.Create(card); err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}
	return card, nil
}

func (s *service) ListCards(_ context.Context, userID uint) ([]models.CreditCard, error) {
	cards, err := s.repo.ByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

func (s *service) DeleteCard(_ context.Context, userID, cardID uint) error {
	return s.repo.DeleteOwned(userID, cardID)
}

// CardNetwork infers the card network from the leading digit. This is a
// simplified heuristic, not a Luhn validation.
func CardNetwork(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "5"):
		return "Mastercard"
	case strings.HasPrefix(number, "3"):
		return "Amex"
	default:
		return "Unknown"
	}
}
