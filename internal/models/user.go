package models

import "time"

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `json:"phone"`
	Password  string    `gorm:"not null" json:"-"`
	Wallet    *Wallet   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// RegisterInput is the payload accepted by the registration flow.
type RegisterInput struct {
	Name     string `json:"fullname" form:"fullname"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"mobile" form:"mobile"`
	Password string `json:"password" form:"password"`
}
