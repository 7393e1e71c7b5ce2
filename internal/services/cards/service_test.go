package cards

import (
	"context"
	"testing"

	"smartshop/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCardRepo struct {
	cards  []models.CreditCard
	nextID uint
}

func (f *fakeCardRepo) Create(card *models.CreditCard) error {
	f.nextID++
	card.ID = f.nextID
	f.cards = append(f.cards, *card)
	return nil
}

func (f *fakeCardRepo) ByUser(userID uint) ([]models.CreditCard, error) {
	var out []models.CreditCard
	// Default card first, then insertion order.
	for _, c := range f.cards {
		if c.UserID == userID && c.IsDefault {
			out = append(out, c)
		}
	}
	for _, c := range f.cards {
		if c.UserID == userID && !c.IsDefault {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCardRepo) DeleteOwned(userID, cardID uint) error {
	kept := f.cards[:0]
	for _, c := range f.cards {
		if !(c.ID == cardID && c.UserID == userID) {
			kept = append(kept, c)
		}
	}
	f.cards = kept
	return nil
}

func TestCardNetwork(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "Visa"},
		{"5500005555555559", "Mastercard"},
		{"371449635398431", "Amex"},
		{"6011111111111117", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CardNetwork(tt.number), "number %q", tt.number)
	}
}

func TestAddCard(t *testing.T) {
	t.Run("stores only last four and inferred type", func(t *testing.T) {
		repo := &fakeCardRepo{}
		svc := NewService(repo)

		card, err := svc.AddCard(context.Background(), 1, models.CreateCardInput{
			CardNumber:     "4111 1111 1111 1111",
			CardHolderName: "Jane Doe",
			ExpiryDate:     "12/2030",
		})
		require.NoError(t, err)

		assert.Equal(t, "1111", card.LastFour)
		assert.Equal(t, "Visa", card.CardType)
		assert.Equal(t, "Jane Doe", card.CardHolderName)

		// Nothing resembling a full PAN survives in the stored record.
		require.Len(t, repo.cards, 1)
		stored := repo.cards[0]
		assert.Equal(t, "1111", stored.LastFour)
		assert.NotContains(t, []string{stored.CardHolderName, stored.ExpiryDate, stored.CardType}, "4111111111111111")
	})

	t.Run("rejects out-of-range lengths", func(t *testing.T) {
		repo := &fakeCardRepo{}
		svc := NewService(repo)

		for _, number := range []string{"", "411111111111", "41111111111111111111"} {
			_, err := svc.AddCard(context.Background(), 1, models.CreateCardInput{CardNumber: number})
			assert.ErrorIs(t, err, ErrInvalidCardNumber, "number %q", number)
		}
		assert.Empty(t, repo.cards)
	})
}

func TestListCardsDefaultFirst(t *testing.T) {
	repo := &fakeCardRepo{}
	svc := NewService(repo)

	_, err := svc.AddCard(context.Background(), 1, models.CreateCardInput{CardNumber: "4111111111111111"})
	require.NoError(t, err)
	repo.cards = append(repo.cards, models.CreditCard{ID: 99, UserID: 1, LastFour: "4444", IsDefault: true})

	list, err := svc.ListCards(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].IsDefault)
}

func TestDeleteCardOwnership(t *testing.T) {
	repo := &fakeCardRepo{}
	svc := NewService(repo)

	card, err := svc.AddCard(context.Background(), 1, models.CreateCardInput{CardNumber: "5500005555555559"})
	require.NoError(t, err)

	// Another user cannot delete it.
	require.NoError(t, svc.DeleteCard(context.Background(), 2, card.ID))
	assert.Len(t, repo.cards, 1)

	// The owner can, and a repeat delete is a no-op.
	require.NoError(t, svc.DeleteCard(context.Background(), 1, card.ID))
	assert.Empty(t, repo.cards)
	require.NoError(t, svc.DeleteCard(context.Background(), 1, card.ID))
}

func TestMaskedNumber(t *testing.T) {
	card := models.CreditCard{LastFour: "1111"}
	assert.Equal(t, "**** **** **** 1111", card.MaskedNumber())
}
