package models

// Product is a catalog entry. Prices are in the smallest currency unit.
// The catalog is seeded once at startup and read-only afterwards.
type Product struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Price    int    `gorm:"not null" json:"price"`
	Img      string `json:"img"`
	Category string `gorm:"index" json:"category"`
}
