package model

import (
	"time"
)

// Transaction is an append-only purchase record. CCode groups the rows of a
// single confirmation: each single purchase gets its own code, every line of
// a bulk checkout shares one.
type Transaction struct {
	ID        uint      `gorm:"primarykey" json:"tid"`
	ItemID    uint      `gorm:"not null;index" json:"iid"`
	UserID    uint      `gorm:"not null;index" json:"uid"`
	Amount    int       `gorm:"not null" json:"amount"`
	CCode     int       `gorm:"column:ccode;not null" json:"ccode"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Item Item `gorm:"foreignKey:ItemID" json:"item"`
}

func (Transaction) TableName() string {
	return "transactions"
}
