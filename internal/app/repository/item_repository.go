package repository

import (
	"fmt"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/pkg/logger"
	"gorm.io/gorm"
)

// ItemFilter describes an item search. Zero-valued fields are skipped; the
// predicates that remain are ANDed together.
type ItemFilter struct {
	Name              string   // substring match
	PriceMin          *float64 // inclusive
	PriceMax          *float64 // inclusive
	Category          string   // exact match, "" or "all" matches everything
	IncludeOutOfStock bool     // stock > 0 is required unless set
}

type ItemRepository interface {
	Create(item *model.Item) error
	FindAll() ([]model.Item, error)
	FindByID(id uint) (*model.Item, error)
	FindByCategory(category string) ([]model.Item, error)
	FindWithFilter(filter ItemFilter) ([]model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *model.Item) error {
	logger.Debug("Creating item in database", map[string]interface{}{
		"name":     item.Name,
		"category": item.Category,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create item in database", err, map[string]interface{}{
			"name":     item.Name,
			"category": item.Category,
		})
		return err
	}

	logger.Debug("Item created in database", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})
	return nil
}

func (r *itemRepository) FindAll() ([]model.Item, error) {
	return r.FindWithFilter(ItemFilter{IncludeOutOfStock: true})
}

func (r *itemRepository) FindByID(id uint) (*model.Item, error) {
	logger.Debug("Finding item by ID in database", map[string]interface{}{
		"item_id": id,
	})

	var item model.Item
	err := r.db.First(&item, id).Error
	if err != nil {
		logger.Error("Failed to find item by ID in database", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}

	return &item, nil
}

func (r *itemRepository) FindByCategory(category string) ([]model.Item, error) {
	logger.Debug("Finding items by category in database", map[string]interface{}{
		"category": category,
	})

	return r.FindWithFilter(ItemFilter{Category: category, IncludeOutOfStock: true})
}

func (r *itemRepository) FindWithFilter(filter ItemFilter) ([]model.Item, error) {
	logger.Debug("Finding items with filter", map[string]interface{}{
		"name":                 filter.Name,
		"price_min":            filter.PriceMin,
		"price_max":            filter.PriceMax,
		"category":             filter.Category,
		"include_out_of_stock": filter.IncludeOutOfStock,
	})

	query := r.db.Model(&model.Item{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	}
	if filter.PriceMin != nil && filter.PriceMax != nil {
		query = query.Where("price BETWEEN ? AND ?", *filter.PriceMin, *filter.PriceMax)
	}
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if !filter.IncludeOutOfStock {
		query = query.Where("stock > 0")
	}

	var items []model.Item
	if err := query.Find(&items).Error; err != nil {
		logger.Error("Failed to find items with filter", err, map[string]interface{}{
			"name":     filter.Name,
			"category": filter.Category,
		})
		return nil, err
	}

	logger.Debug("Items found with filter", map[string]interface{}{
		"count": len(items),
	})
	return items, nil
}
