package models

// CartItem is a cart line owned by a single user. Quantity stays >= 1; a
// line whose quantity drops to zero or below is deleted in the same
// database transaction that decremented it.
type CartItem struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Name     string `gorm:"not null" json:"name"`
	Price    int    `json:"price"`
	Img      string `json:"img"`
	Quantity int    `gorm:"default:1" json:"quantity"`
}

// TableName maps cart lines onto the cart table.
func (CartItem) TableName() string {
	return "cart"
}
