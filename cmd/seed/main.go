package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jylee/minimart-backend/config"
	"github.com/jylee/minimart-backend/internal/app/model"
	"github.com/jylee/minimart-backend/internal/app/repository"
	"github.com/jylee/minimart-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports the item catalog from an XLSX sheet with the columns:
// name, image, spec, price, stock, category.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	itemRepo := repository.NewItemRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	items, skipped, err := readItemsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total items to import: %d (skipped %d rows)\n", len(items), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range items {
		if err := itemRepo.Create(&items[i]); err != nil {
			log.Printf("Failed to import item %q: %v", items[i].Name, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total items imported: %d\n", imported)
}

func readItemsFromXLSX(filePath string) ([]model.Item, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var items []model.Item
	skipped := 0

	for i, row := range rows {
		// First row is the header
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 6 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		image := strings.TrimSpace(row[1])
		spec := strings.TrimSpace(row[2])
		priceStr := strings.TrimSpace(row[3])
		stockStr := strings.TrimSpace(row[4])
		category := strings.TrimSpace(row[5])

		if name == "" || category == "" {
			skipped++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skipped++
			continue
		}

		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			skipped++
			continue
		}

		items = append(items, model.Item{
			Name:     name,
			ImageURL: image,
			Spec:     spec,
			Price:    price,
			Stock:    stock,
			Category: category,
		})
	}

	return items, skipped, nil
}
