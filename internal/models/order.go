package models

import "time"

const OrderStatusProcessing = "Processing"

// Order is created once per successful wallet payment. No further lifecycle
// transitions exist yet.
type Order struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	TotalAmount   float64   `gorm:"type:decimal(10,2)" json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	OrderStatus   string    `gorm:"default:'Processing'" json:"order_status"`
	CreatedAt     time.Time `json:"created_at"`
}
