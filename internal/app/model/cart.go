package model

import (
	"time"
)

type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_item" json:"uid"`
	ItemID    uint      `gorm:"not null;index;uniqueIndex:idx_cart_user_item" json:"iid"`
	Amount    int       `gorm:"not null;default:1" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Item Item `gorm:"foreignKey:ItemID" json:"item"`
}

func (CartItem) TableName() string {
	return "carts"
}
