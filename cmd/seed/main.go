package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ratehub/ratehub-backend/config"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Bulk-imports stores from an XLSX sheet with columns:
// name | email | address | owner_email
// Owner emails that do not resolve to a store_owner account leave the
// store unowned, matching the admin endpoint's behavior.
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

	userRepo := repository.NewUserRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	stores, skipped, err := readStoresFromXLSX(filePath, userRepo)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total stores to import: %d (skipped %d invalid rows)\n", len(stores), skipped)
	if len(stores) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 1000
	if err := db.GetDB().CreateInBatches(stores, batchSize).Error; err != nil {
		log.Fatal("Failed to import stores:", err)
	}

	fmt.Printf("Imported %d stores successfully\n", len(stores))
}

func readStoresFromXLSX(filePath string, userRepo repository.UserRepository) ([]model.Store, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, err
	}

	var stores []model.Store
	skipped := 0
	for i, row := range rows {
		// Header row
		if i == 0 {
			continue
		}
		if len(row) < 1 || strings.TrimSpace(row[0]) == "" {
			skipped++
			continue
		}

		store := model.Store{
			Name: strings.TrimSpace(row[0]),
		}
		if len(row) > 1 {
			store.Email = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			store.Address = strings.TrimSpace(row[2])
		}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			ownerEmail := strings.TrimSpace(row[3])
			owner, err := userRepo.FindOwnerByEmail(ownerEmail)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, 0, err
				}
				fmt.Printf("Row %d: owner %q not found, importing unowned\n", i+1, ownerEmail)
			} else {
				store.OwnerID = &owner.ID
			}
		}

		stores = append(stores, store)
	}

	return stores, skipped, nil
}
