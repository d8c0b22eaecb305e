package service

import (
	"errors"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrNoSearchResults = errors.New("no items found")

type CatalogService interface {
	ListByCategory(category string) ([]model.Item, error)
	GetItem(id uint) (*model.Item, error)
	Search(filter repository.ItemFilter) ([]model.Item, error)
}

type catalogService struct {
	itemRepo repository.ItemRepository
}

func NewCatalogService(itemRepo repository.ItemRepository) CatalogService {
	return &catalogService{itemRepo: itemRepo}
}

// ListByCategory returns all items in a category; "all" lists the whole
// catalog. Out-of-stock items are included.
func (s *catalogService) ListByCategory(category string) ([]model.Item, error) {
	logger.Debug("Listing items by category", map[string]interface{}{
		"category": category,
	})

	if category == "all" {
		return s.itemRepo.FindAll()
	}
	return s.itemRepo.FindByCategory(category)
}

func (s *catalogService) GetItem(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Item not found", map[string]interface{}{
				"item_id": id,
			})
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// Search applies the filter predicates ANDed together. An empty result is a
// business failure per the storefront contract.
func (s *catalogService) Search(filter repository.ItemFilter) ([]model.Item, error) {
	items, err := s.itemRepo.FindWithFilter(filter)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		logger.Debug("Search returned no items", map[string]interface{}{
			"name":     filter.Name,
			"category": filter.Category,
		})
		return nil, ErrNoSearchResults
	}
	return items, nil
}
