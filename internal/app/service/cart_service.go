package service

import (
	"errors"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartService interface {
	AddToCart(userID, itemID uint) error
	GetUserCart(userID uint) ([]model.CartItem, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
}

func NewCartService(cartRepo repository.CartRepository, itemRepo repository.ItemRepository) CartService {
	return &cartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

// AddToCart increments an existing (user, item) line by one, or inserts a
// new line with amount 1.
func (s *cartService) AddToCart(userID, itemID uint) error {
	logger.Debug("Adding item to cart", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
	})

	if _, err := s.itemRepo.FindByID(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Item not found for cart", map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
			})
			return ErrItemNotFound
		}
		return err
	}

	existing, err := s.cartRepo.FindByUserAndItem(userID, itemID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to look up cart line", err, map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
			})
			return err
		}

		cartItem := &model.CartItem{
			UserID: userID,
			ItemID: itemID,
			Amount: 1,
		}
		if err := s.cartRepo.Create(cartItem); err != nil {
			return err
		}

		logger.Info("Cart line created", map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return nil
	}

	existing.Amount++
	if err := s.cartRepo.Update(existing); err != nil {
		return err
	}

	logger.Info("Cart line incremented", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
		"amount":  existing.Amount,
	})
	return nil
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return cartItems, nil
}
