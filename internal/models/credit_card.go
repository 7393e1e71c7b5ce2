package models

import "time"

// CreditCard is a stored payment card. Only the last four digits are ever
// persisted; the full PAN and CVV never reach the database.
type CreditCard struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	LastFour       string    `gorm:"column:card_number_last4;not null" json:"card_number_last4"`
	CardHolderName string    `json:"card_holder_name"`
	ExpiryDate     string    `json:"expiry_date"`
	CardType       string    `json:"card_type"`
	IsDefault      bool      `gorm:"default:false" json:"is_default"`
	CreatedAt      time.Time `json:"created_at"`
}

// MaskedNumber renders the card for display as a fixed mask plus the
// stored last four digits.
func (c *CreditCard) MaskedNumber() string {
	return "**** **** **** " + c.LastFour
}

// CreateCardInput represents the input for adding a new card. A CVV field is
// deliberately absent: it is never accepted into persistent storage.
type CreateCardInput struct {
	CardNumber     string `json:"card_number"`
	CardHolderName string `json:"card_holder_name"`
	ExpiryDate     string `json:"expiry_date"`
}
