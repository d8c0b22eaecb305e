package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/internal/app/service"
	"github.com/jylee/minimart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupItemControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	itemRepo := repository.NewItemRepository(testDB)
	catalogService := service.NewCatalogService(itemRepo)
	itemController := NewItemController(catalogService)

	router := gin.New()
	router.GET("/items/:class", itemController.ListByCategory)
	router.GET("/detail/:iid", itemController.Detail)
	router.GET("/search", itemController.Search)

	items := []model.Item{
		{Name: "Green Tea", ImageURL: "img/tea.png", Spec: "loose leaf", Price: 4.5, Stock: 12, Category: "drinks"},
		{Name: "Black Tea", ImageURL: "img/black.png", Spec: "bags", Price: 3.0, Stock: 0, Category: "drinks"},
		{Name: "Tea Pot", ImageURL: "img/pot.png", Spec: "cast iron", Price: 25.0, Stock: 4, Category: "kitchen"},
	}
	for i := range items {
		require.NoError(t, testDB.Create(&items[i]).Error)
	}

	return router, testDB
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestItemController_ListByCategory(t *testing.T) {
	router, _ := setupItemControllerTest(t)

	w := getPath(router, "/items/drinks")
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)

	// Summaries carry no stock field
	_, hasStock := summaries[0]["stock"]
	assert.False(t, hasStock)

	w = getPath(router, "/items/all")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 3)
}

func TestItemController_Detail(t *testing.T) {
	router, testDB := setupItemControllerTest(t)

	var item model.Item
	require.NoError(t, testDB.Where("name = ?", "Green Tea").First(&item).Error)

	w := getPath(router, "/detail/"+strconv.Itoa(int(item.ID)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Green Tea", resp["name"])
	assert.Equal(t, float64(12), resp["stock"])
}

func TestItemController_Detail_NotFound(t *testing.T) {
	router, _ := setupItemControllerTest(t)

	w := getPath(router, "/detail/9999")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No item found.")
}

func TestItemController_Detail_BadID(t *testing.T) {
	router, _ := setupItemControllerTest(t)

	w := getPath(router, "/detail/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing iid.")
}

func TestItemController_Search(t *testing.T) {
	router, _ := setupItemControllerTest(t)

	w := getPath(router, "/search?name=Tea")
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)

	// noStock switches out-of-stock items back on
	w = getPath(router, "/search?name=Tea&noStock=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 3)
}

func TestItemController_Search_PriceRange(t *testing.T) {
	router, _ := setupItemControllerTest(t)

	w := getPath(router, "/search?priceRange=4-5")
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Green Tea", summaries[0]["name"])

	w = getPath(router, "/search?priceRange=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid price range.")
}

func TestItemController_Search_NoResults(t *testing.T) {
	router, _ := setupItemControllerTest(t)

	w := getPath(router, "/search?name=Coffee")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No items found.")
}
