package service

import (
	"errors"
	"testing"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPurchaseServiceTest(t *testing.T, infiniteIDs ...uint) (PurchaseService, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	transactionRepo := repository.NewTransactionRepository(testDB)
	purchaseService := NewPurchaseService(transactionRepo, cartRepo, testDB, infiniteIDs)

	user := &model.User{
		Username:     "testuser",
		PasswordHash: "hash",
		Email:        "test@example.com",
	}
	testDB.Create(user)

	return purchaseService, testDB, user
}

func createTestItem(t *testing.T, testDB *gorm.DB, name string, stock int) *model.Item {
	item := &model.Item{
		Name:     name,
		ImageURL: "img/" + name + ".png",
		Spec:     "test spec",
		Price:    9.99,
		Stock:    stock,
		Category: "test",
	}
	require.NoError(t, testDB.Create(item).Error)
	return item
}

func itemStock(t *testing.T, testDB *gorm.DB, itemID uint) int {
	var item model.Item
	require.NoError(t, testDB.First(&item, itemID).Error)
	return item.Stock
}

func transactionCount(t *testing.T, testDB *gorm.DB) int64 {
	var count int64
	require.NoError(t, testDB.Model(&model.Transaction{}).Count(&count).Error)
	return count
}

func TestPurchaseService_Purchase_DecrementsStock(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	transaction, err := purchaseService.Purchase(user.ID, item.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, transaction)

	assert.Equal(t, item.ID, transaction.ItemID)
	assert.Equal(t, user.ID, transaction.UserID)
	assert.Equal(t, 3, transaction.Amount)
	assert.Equal(t, 0, transaction.CCode)
	assert.Equal(t, item.Name, transaction.Item.Name)

	assert.Equal(t, 7, itemStock(t, testDB, item.ID))
}

func TestPurchaseService_Purchase_InsufficientStock(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 2)

	transaction, err := purchaseService.Purchase(user.ID, item.ID, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, transaction)

	// Rejection mutates nothing
	assert.Equal(t, 2, itemStock(t, testDB, item.ID))
	assert.Equal(t, int64(0), transactionCount(t, testDB))
}

func TestPurchaseService_Purchase_ItemNotFound(t *testing.T) {
	purchaseService, _, user := setupPurchaseServiceTest(t)

	transaction, err := purchaseService.Purchase(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, transaction)
}

func TestPurchaseService_Purchase_CCodesStrictlyIncrease(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	for want := 0; want < 3; want++ {
		transaction, err := purchaseService.Purchase(user.ID, item.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, want, transaction.CCode)
	}
}

func TestPurchaseService_CCodesMonotonicAcrossSingleAndBulk(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	first, err := purchaseService.Purchase(user.ID, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, first.CCode)

	require.NoError(t, testDB.Create(&model.CartItem{UserID: user.ID, ItemID: item.ID, Amount: 1}).Error)
	bulkCCode, err := purchaseService.BulkCheckout(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, bulkCCode)

	// The next single purchase sees the bulk code in the user's history
	second, err := purchaseService.Purchase(user.ID, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, second.CCode)
}

func TestPurchaseService_Purchase_CCodeScopedPerUser(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	other := &model.User{
		Username:     "otheruser",
		PasswordHash: "hash",
		Email:        "other@example.com",
	}
	require.NoError(t, testDB.Create(other).Error)

	_, err := purchaseService.Purchase(user.ID, item.ID, 1)
	require.NoError(t, err)
	_, err = purchaseService.Purchase(user.ID, item.ID, 1)
	require.NoError(t, err)

	// The other user's sequence starts at 0 regardless
	transaction, err := purchaseService.Purchase(other.ID, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, transaction.CCode)
}

func TestPurchaseService_Purchase_InfiniteCapacityItem(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	item := createTestItem(t, testDB, "Evergreen", 0)
	user := &model.User{Username: "testuser", PasswordHash: "hash", Email: "test@example.com"}
	require.NoError(t, testDB.Create(user).Error)

	cartRepo := repository.NewCartRepository(testDB)
	transactionRepo := repository.NewTransactionRepository(testDB)
	purchaseService := NewPurchaseService(transactionRepo, cartRepo, testDB, []uint{item.ID})

	// Requested amount far exceeds stock, but the item is never checked
	transaction, err := purchaseService.Purchase(user.ID, item.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, transaction.Amount)

	// Stock is never decremented either
	assert.Equal(t, 0, itemStock(t, testDB, item.ID))
}

func TestPurchaseService_BulkCheckout_SharedCCode(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	itemA := createTestItem(t, testDB, "Alpha", 5)
	itemB := createTestItem(t, testDB, "Beta", 5)

	require.NoError(t, testDB.Create(&model.CartItem{UserID: user.ID, ItemID: itemA.ID, Amount: 2}).Error)
	require.NoError(t, testDB.Create(&model.CartItem{UserID: user.ID, ItemID: itemB.ID, Amount: 1}).Error)

	ccode, err := purchaseService.BulkCheckout(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, ccode)

	var transactions []model.Transaction
	require.NoError(t, testDB.Order("id ASC").Find(&transactions).Error)
	require.Len(t, transactions, 2)
	for _, transaction := range transactions {
		assert.Equal(t, ccode, transaction.CCode)
	}

	assert.Equal(t, 3, itemStock(t, testDB, itemA.ID))
	assert.Equal(t, 4, itemStock(t, testDB, itemB.ID))

	// Cart is cleared
	var cartCount int64
	require.NoError(t, testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Equal(t, int64(0), cartCount)
}

func TestPurchaseService_BulkCheckout_GlobalCCodeScope(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	other := &model.User{
		Username:     "otheruser",
		PasswordHash: "hash",
		Email:        "other@example.com",
	}
	require.NoError(t, testDB.Create(other).Error)

	// First user's purchases raise the global maximum to 1
	_, err := purchaseService.Purchase(user.ID, item.ID, 1)
	require.NoError(t, err)
	_, err = purchaseService.Purchase(user.ID, item.ID, 1)
	require.NoError(t, err)

	// The other user's bulk code is global-max+1, not their per-user 0
	require.NoError(t, testDB.Create(&model.CartItem{UserID: other.ID, ItemID: item.ID, Amount: 1}).Error)
	ccode, err := purchaseService.BulkCheckout(other.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, ccode)
}

func TestPurchaseService_BulkCheckout_InsufficientAbortsWholeBatch(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	itemA := createTestItem(t, testDB, "Alpha", 5)
	itemB := createTestItem(t, testDB, "Beta", 1)

	require.NoError(t, testDB.Create(&model.CartItem{UserID: user.ID, ItemID: itemA.ID, Amount: 2}).Error)
	require.NoError(t, testDB.Create(&model.CartItem{UserID: user.ID, ItemID: itemB.ID, Amount: 3}).Error)

	ccode, err := purchaseService.BulkCheckout(user.ID)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, ccode)

	var shortage *StockShortageError
	require.ErrorAs(t, err, &shortage)
	assert.Equal(t, []string{"Beta"}, shortage.ItemNames)

	// Nothing applied: no transactions, no stock change, cart intact
	assert.Equal(t, int64(0), transactionCount(t, testDB))
	assert.Equal(t, 5, itemStock(t, testDB, itemA.ID))
	assert.Equal(t, 1, itemStock(t, testDB, itemB.ID))

	var cartCount int64
	require.NoError(t, testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Equal(t, int64(2), cartCount)
}

func TestPurchaseService_BulkCheckout_EmptyCart(t *testing.T) {
	purchaseService, _, user := setupPurchaseServiceTest(t)

	ccode, err := purchaseService.BulkCheckout(user.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, ccode)
}

func TestPurchaseService_BulkCheckout_InfiniteItemSkipsCheck(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	item := createTestItem(t, testDB, "Evergreen", 0)
	user := &model.User{Username: "testuser", PasswordHash: "hash", Email: "test@example.com"}
	require.NoError(t, testDB.Create(user).Error)

	cartRepo := repository.NewCartRepository(testDB)
	transactionRepo := repository.NewTransactionRepository(testDB)
	purchaseService := NewPurchaseService(transactionRepo, cartRepo, testDB, []uint{item.ID})

	require.NoError(t, testDB.Create(&model.CartItem{UserID: user.ID, ItemID: item.ID, Amount: 50}).Error)

	ccode, err := purchaseService.BulkCheckout(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, ccode)
	assert.Equal(t, 0, itemStock(t, testDB, item.ID))
}

func TestPurchaseService_GetUserTransactions(t *testing.T) {
	purchaseService, testDB, user := setupPurchaseServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	_, err := purchaseService.GetUserTransactions(user.ID)
	assert.True(t, errors.Is(err, ErrNoTransactions))

	_, err = purchaseService.Purchase(user.ID, item.ID, 2)
	require.NoError(t, err)

	transactions, err := purchaseService.GetUserTransactions(user.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, item.Name, transactions[0].Item.Name)
}
