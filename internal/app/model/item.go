package model

import (
	"time"
)

type Item struct {
	ID        uint      `gorm:"primarykey" json:"iid"`
	Name      string    `gorm:"not null" json:"name"`
	ImageURL  string    `json:"img"`
	Spec      string    `gorm:"type:text" json:"spec"`
	Price     float64   `gorm:"not null" json:"price"`
	Stock     int       `gorm:"default:0" json:"stock"`
	Category  string    `gorm:"type:varchar(50);index" json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	CartItems    []CartItem    `gorm:"foreignKey:ItemID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:ItemID" json:"-"`
}

func (Item) TableName() string {
	return "items"
}

// ItemSummary is the reduced view returned by listing and search endpoints.
type ItemSummary struct {
	ID       uint    `json:"iid"`
	Name     string  `json:"name"`
	ImageURL string  `json:"img"`
	Spec     string  `json:"spec"`
	Price    float64 `json:"price"`
}

func (i Item) Summary() ItemSummary {
	return ItemSummary{
		ID:       i.ID,
		Name:     i.Name,
		ImageURL: i.ImageURL,
		Spec:     i.Spec,
		Price:    i.Price,
	}
}
