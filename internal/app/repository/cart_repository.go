package repository

import (
	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByUserAndItem(userID, itemID uint) (*model.CartItem, error)
	Update(cartItem *model.CartItem) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart line in database", map[string]interface{}{
		"user_id": cartItem.UserID,
		"item_id": cartItem.ItemID,
		"amount":  cartItem.Amount,
	})

	if err := r.db.Create(cartItem).Error; err != nil {
		logger.Error("Failed to create cart line in database", err, map[string]interface{}{
			"user_id": cartItem.UserID,
			"item_id": cartItem.ItemID,
		})
		return err
	}

	logger.Debug("Cart line created in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"item_id":      cartItem.ItemID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	logger.Debug("Finding cart lines by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cartItems []model.CartItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Item").
		Find(&cartItems).Error
	if err != nil {
		logger.Error("Failed to find cart lines by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart lines found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

func (r *cartRepository) FindByUserAndItem(userID, itemID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart line by user and item in database", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
	})

	var cartItem model.CartItem
	err := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&cartItem).Error
	if err != nil {
		return nil, err
	}

	return &cartItem, nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	logger.Debug("Updating cart line in database", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"user_id":      cartItem.UserID,
		"item_id":      cartItem.ItemID,
		"amount":       cartItem.Amount,
	})

	if err := r.db.Save(cartItem).Error; err != nil {
		logger.Error("Failed to update cart line in database", err, map[string]interface{}{
			"cart_item_id": cartItem.ID,
			"user_id":      cartItem.UserID,
			"item_id":      cartItem.ItemID,
		})
		return err
	}

	return nil
}
