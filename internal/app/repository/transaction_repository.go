package repository

import (
	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/pkg/logger"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(transaction *model.Transaction) error
	FindByID(id uint) (*model.Transaction, error)
	FindByUserID(userID uint) ([]model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(transaction *model.Transaction) error {
	logger.Debug("Creating transaction in database", map[string]interface{}{
		"user_id": transaction.UserID,
		"item_id": transaction.ItemID,
		"amount":  transaction.Amount,
		"ccode":   transaction.CCode,
	})

	if err := r.db.Create(transaction).Error; err != nil {
		logger.Error("Failed to create transaction in database", err, map[string]interface{}{
			"user_id": transaction.UserID,
			"item_id": transaction.ItemID,
		})
		return err
	}

	logger.Debug("Transaction created in database", map[string]interface{}{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
		"ccode":          transaction.CCode,
	})
	return nil
}

func (r *transactionRepository) FindByID(id uint) (*model.Transaction, error) {
	logger.Debug("Finding transaction by ID in database", map[string]interface{}{
		"transaction_id": id,
	})

	var transaction model.Transaction
	err := r.db.Preload("Item").First(&transaction, id).Error
	if err != nil {
		logger.Error("Failed to find transaction by ID in database", err, map[string]interface{}{
			"transaction_id": id,
		})
		return nil, err
	}

	return &transaction, nil
}

func (r *transactionRepository) FindByUserID(userID uint) ([]model.Transaction, error) {
	logger.Debug("Finding transactions by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var transactions []model.Transaction
	err := r.db.Where("user_id = ?", userID).
		Preload("Item").
		Order("id ASC").
		Find(&transactions).Error
	if err != nil {
		logger.Error("Failed to find transactions by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Transactions found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(transactions),
	})
	return transactions, nil
}
