package db

import (
	"fmt"

	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/pkg/logger"
)

// Migrate runs schema migrations for all storefront tables
func Migrate() error {
	logger.Info("Running database migrations")

	err := DB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.CartItem{},
		&model.Transaction{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// Seed inserts a minimal demo catalog when the items table is empty.
// The full catalog is imported with cmd/seed from an XLSX sheet.
func Seed() error {
	var count int64
	if err := DB.Model(&model.Item{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if count > 0 {
		logger.Debug("Items table already populated, skipping seed", map[string]interface{}{
			"count": count,
		})
		return nil
	}

	items := []model.Item{
		{Name: "Wireless Mouse", ImageURL: "img/mouse.png", Spec: "2.4GHz, 1600dpi", Price: 19.99, Stock: 25, Category: "electronics"},
		{Name: "Mechanical Keyboard", ImageURL: "img/keyboard.png", Spec: "87 keys, brown switches", Price: 79.99, Stock: 10, Category: "electronics"},
		{Name: "Water Bottle", ImageURL: "img/bottle.png", Spec: "750ml, stainless", Price: 12.50, Stock: 40, Category: "outdoors"},
	}
	if err := DB.Create(&items).Error; err != nil {
		return fmt.Errorf("failed to seed items: %w", err)
	}

	logger.Info("Seeded demo catalog", map[string]interface{}{
		"count": len(items),
	})
	return nil
}
