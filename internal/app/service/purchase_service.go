package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("not enough items in stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNoTransactions    = errors.New("no transactions found")
)

// StockShortageError lists the cart lines a bulk checkout could not fill.
// It matches ErrInsufficientStock under errors.Is.
type StockShortageError struct {
	ItemNames []string
}

func (e *StockShortageError) Error() string {
	return "not enough items in stock: " + strings.Join(e.ItemNames, ", ")
}

func (e *StockShortageError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type PurchaseService interface {
	Purchase(userID, itemID uint, amount int) (*model.Transaction, error)
	BulkCheckout(userID uint) (int, error)
	GetUserTransactions(userID uint) ([]model.Transaction, error)
}

type purchaseService struct {
	transactionRepo repository.TransactionRepository
	cartRepo        repository.CartRepository
	infiniteItems   map[uint]struct{}
	db              *gorm.DB
}

// NewPurchaseService builds the purchase engine. Items listed in
// infiniteCapacityIDs are sold without stock checks or decrements.
func NewPurchaseService(
	transactionRepo repository.TransactionRepository,
	cartRepo repository.CartRepository,
	db *gorm.DB,
	infiniteCapacityIDs []uint,
) PurchaseService {
	infinite := make(map[uint]struct{}, len(infiniteCapacityIDs))
	for _, id := range infiniteCapacityIDs {
		infinite[id] = struct{}{}
	}
	return &purchaseService{
		transactionRepo: transactionRepo,
		cartRepo:        cartRepo,
		infiniteItems:   infinite,
		db:              db,
	}
}

func (s *purchaseService) hasInfiniteCapacity(itemID uint) bool {
	_, ok := s.infiniteItems[itemID]
	return ok
}

// Purchase records a single purchase. The next confirmation code for the user
// (their current maximum plus one, starting at 0) is assigned inside the same
// transaction that locks the item row.
func (s *purchaseService) Purchase(userID, itemID uint, amount int) (*model.Transaction, error) {
	logger.Info("Processing purchase", map[string]interface{}{
		"user_id": userID,
		"item_id": itemID,
		"amount":  amount,
	})

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during purchase, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
			})
		}
	}()

	// Lock the buyer's row first: concurrent purchases by the same user must
	// not read the same maximum confirmation code.
	if err := lockUser(tx, userID); err != nil {
		tx.Rollback()
		logger.Error("Failed to lock user for purchase", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	ccode, err := nextUserCCode(tx, userID)
	if err != nil {
		tx.Rollback()
		logger.Error("Failed to compute next confirmation code", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	transaction, err := s.purchaseOne(tx, userID, itemID, amount, ccode)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, ErrInsufficientStock) {
			logger.Warn("Purchase rejected: insufficient stock", map[string]interface{}{
				"user_id": userID,
				"item_id": itemID,
				"amount":  amount,
			})
		}
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit purchase transaction", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return nil, err
	}

	logger.Info("Purchase completed successfully", map[string]interface{}{
		"user_id":        userID,
		"item_id":        itemID,
		"amount":         amount,
		"ccode":          ccode,
		"transaction_id": transaction.ID,
	})

	return s.transactionRepo.FindByID(transaction.ID)
}

// BulkCheckout converts a user's entire cart into transactions under one
// shared confirmation code (the global maximum plus one, starting at 0).
// Every referenced item is locked before any sufficiency check so a short
// line aborts the whole batch with nothing mutated.
func (s *purchaseService) BulkCheckout(userID uint) (int, error) {
	logger.Info("Processing bulk checkout", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart for bulk checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Bulk checkout rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return 0, ErrEmptyCart
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during bulk checkout, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"user_id": userID,
			})
		}
	}()

	// Serialize the user's checkouts before touching their cart lines.
	if err := lockUser(tx, userID); err != nil {
		tx.Rollback()
		logger.Error("Failed to lock user for bulk checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}

	// Lock and check every line before touching any stock.
	var short []string
	for _, line := range cartItems {
		var item model.Item
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, line.ItemID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cart references missing item", map[string]interface{}{
					"user_id": userID,
					"item_id": line.ItemID,
				})
				return 0, ErrItemNotFound
			}
			logger.Error("Failed to fetch item during bulk checkout", err, map[string]interface{}{
				"user_id": userID,
				"item_id": line.ItemID,
			})
			return 0, err
		}
		if !s.hasInfiniteCapacity(line.ItemID) && item.Stock < line.Amount {
			short = append(short, item.Name)
		}
	}

	if len(short) > 0 {
		tx.Rollback()
		logger.Warn("Bulk checkout rejected: insufficient stock", map[string]interface{}{
			"user_id":     userID,
			"short_items": short,
		})
		return 0, &StockShortageError{ItemNames: short}
	}

	ccode, err := nextGlobalCCode(tx)
	if err != nil {
		tx.Rollback()
		logger.Error("Failed to compute shared confirmation code", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}

	for _, line := range cartItems {
		if _, err := s.purchaseOne(tx, userID, line.ItemID, line.Amount, ccode); err != nil {
			tx.Rollback()
			logger.Error("Failed to apply cart line during bulk checkout", err, map[string]interface{}{
				"user_id": userID,
				"item_id": line.ItemID,
				"amount":  line.Amount,
			})
			return 0, err
		}
	}

	if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to clear cart after bulk checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit bulk checkout transaction", err, map[string]interface{}{
			"user_id": userID,
		})
		return 0, err
	}

	logger.Info("Bulk checkout completed successfully", map[string]interface{}{
		"user_id":    userID,
		"line_count": len(cartItems),
		"ccode":      ccode,
	})
	return ccode, nil
}

func (s *purchaseService) GetUserTransactions(userID uint) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, ErrNoTransactions
	}
	return transactions, nil
}

// purchaseOne checks stock, decrements it and appends a transaction row, all
// on the caller's transaction. Infinite-capacity items skip both the check
// and the decrement. Callers own commit and rollback.
func (s *purchaseService) purchaseOne(tx *gorm.DB, userID, itemID uint, amount, ccode int) (*model.Transaction, error) {
	var item model.Item
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if !s.hasInfiniteCapacity(itemID) {
		if item.Stock < amount {
			return nil, ErrInsufficientStock
		}
		if err := tx.Model(&model.Item{}).
			Where("id = ?", itemID).
			Update("stock", gorm.Expr("stock - ?", amount)).Error; err != nil {
			return nil, err
		}
	}

	transaction := &model.Transaction{
		ItemID: itemID,
		UserID: userID,
		Amount: amount,
		CCode:  ccode,
	}
	if err := tx.Create(transaction).Error; err != nil {
		return nil, err
	}
	return transaction, nil
}

// lockUser takes the user's row lock for the duration of tx.
func lockUser(tx *gorm.DB, userID uint) error {
	var user model.User
	return tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, userID).Error
}

// nextUserCCode returns the user's current maximum confirmation code plus
// one, or 0 when the user has no transactions. Callers must hold the user's
// row lock so the scan cannot race a concurrent purchase.
func nextUserCCode(tx *gorm.DB, userID uint) (int, error) {
	var last model.Transaction
	err := tx.Where("user_id = ?", userID).
		Order("ccode DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return last.CCode + 1, nil
}

// nextGlobalCCode returns the maximum confirmation code across all users
// plus one, or 0 when no transactions exist. Bulk checkout deliberately
// scopes the code globally where single purchases scope it per user. The
// scan locks the current maximum row so checkouts that would share it
// block each other until commit.
func nextGlobalCCode(tx *gorm.DB) (int, error) {
	var last model.Transaction
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("ccode DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return last.CCode + 1, nil
}
