package service

import (
	"testing"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	cartService := NewCartService(cartRepo, itemRepo)

	user := &model.User{
		Username:     "testuser",
		PasswordHash: "hash",
		Email:        "test@example.com",
	}
	require.NoError(t, testDB.Create(user).Error)

	return cartService, testDB, user
}

func TestCartService_AddToCart_CreatesLine(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	err := cartService.AddToCart(user.ID, item.ID)
	require.NoError(t, err)

	var cartItem model.CartItem
	require.NoError(t, testDB.Where("user_id = ? AND item_id = ?", user.ID, item.ID).First(&cartItem).Error)
	assert.Equal(t, 1, cartItem.Amount)
}

func TestCartService_AddToCart_IncrementsExistingLine(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)
	item := createTestItem(t, testDB, "Widget", 10)

	require.NoError(t, cartService.AddToCart(user.ID, item.ID))
	require.NoError(t, cartService.AddToCart(user.ID, item.ID))
	require.NoError(t, cartService.AddToCart(user.ID, item.ID))

	// Still a single line, amount accumulated
	var cartItems []model.CartItem
	require.NoError(t, testDB.Where("user_id = ?", user.ID).Find(&cartItems).Error)
	require.Len(t, cartItems, 1)
	assert.Equal(t, 3, cartItems[0].Amount)
}

func TestCartService_AddToCart_ItemNotFound(t *testing.T) {
	cartService, _, user := setupCartServiceTest(t)

	err := cartService.AddToCart(user.ID, 9999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCartService_GetUserCart(t *testing.T) {
	cartService, testDB, user := setupCartServiceTest(t)
	itemA := createTestItem(t, testDB, "Alpha", 5)
	itemB := createTestItem(t, testDB, "Beta", 5)

	cartItems, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cartItems)

	require.NoError(t, cartService.AddToCart(user.ID, itemA.ID))
	require.NoError(t, cartService.AddToCart(user.ID, itemB.ID))

	cartItems, err = cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cartItems, 2)

	names := []string{cartItems[0].Item.Name, cartItems[1].Item.Name}
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, names)
}
