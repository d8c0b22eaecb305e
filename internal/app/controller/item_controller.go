package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/internal/app/service"
	apperrors "github.com/jylee/minimart-backend/internal/errors"
	"github.com/jylee/minimart-backend/internal/middleware"
)

type ItemController struct {
	catalogService service.CatalogService
}

func NewItemController(catalogService service.CatalogService) *ItemController {
	return &ItemController{
		catalogService: catalogService,
	}
}

// ListByCategory returns item summaries for a category ("all" lists everything)
// GET /items/:class
func (ctrl *ItemController) ListByCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	category := c.Param("class")
	if category == "" {
		log.Warn("Missing category parameter", nil)
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Missing category.")
		return
	}

	items, err := ctrl.catalogService.ListByCategory(category)
	if err != nil {
		log.Error("Failed to list items", err, map[string]interface{}{
			"category": category,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Items listed successfully", map[string]interface{}{
		"category": category,
		"count":    len(items),
	})
	c.JSON(http.StatusOK, summarize(items))
}

// Detail returns the full record of one item
// GET /detail/:iid
func (ctrl *ItemController) Detail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	iidStr := c.Param("iid")
	iid, err := strconv.ParseUint(iidStr, 10, 32)
	if err != nil {
		log.Warn("Invalid item ID format", map[string]interface{}{
			"iid":   iidStr,
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Missing iid.")
		return
	}

	item, err := ctrl.catalogService.GetItem(uint(iid))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			log.Warn("Item not found", map[string]interface{}{
				"item_id": iid,
			})
			apperrors.BadRequest(c, apperrors.StoreItemNotFound, "No item found.")
			return
		}
		log.Error("Failed to fetch item detail", err, map[string]interface{}{
			"item_id": iid,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, item)
}

// Search filters items by name substring, inclusive price range, category
// and stock availability
// GET /search?name=&priceRange=lo-hi&category=&noStock=
func (ctrl *ItemController) Search(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ItemFilter{
		Name:              c.Query("name"),
		Category:          c.Query("category"),
		IncludeOutOfStock: c.Query("noStock") != "",
	}

	if priceRange := c.Query("priceRange"); priceRange != "" {
		lo, hi, ok := parsePriceRange(priceRange)
		if !ok {
			log.Warn("Invalid price range", map[string]interface{}{
				"price_range": priceRange,
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid price range.")
			return
		}
		filter.PriceMin = &lo
		filter.PriceMax = &hi
	}

	items, err := ctrl.catalogService.Search(filter)
	if err != nil {
		if errors.Is(err, service.ErrNoSearchResults) {
			log.Info("Search returned no items", map[string]interface{}{
				"name":     filter.Name,
				"category": filter.Category,
			})
			apperrors.BadRequest(c, apperrors.StoreNoSearchResults, "No items found.")
			return
		}
		log.Error("Search failed", err, map[string]interface{}{
			"name":     filter.Name,
			"category": filter.Category,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Search completed successfully", map[string]interface{}{
		"count": len(items),
	})
	c.JSON(http.StatusOK, summarize(items))
}

// parsePriceRange splits an inclusive "lo-hi" range.
func parsePriceRange(s string) (float64, float64, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

func summarize(items []model.Item) []model.ItemSummary {
	summaries := make([]model.ItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, item.Summary())
	}
	return summaries
}
