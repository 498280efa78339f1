package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/stampdeck/stampdeck-backend/config"
	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/db"
)

// Bulk importer for onboarding a batch of tenants from a spreadsheet.
//
// Sheet 1 (businesses): Owner Email | Name | Description
// Sheet "Campaigns" (optional): Business Name | Name | Description | Stamps Required
//
// Rows with an unknown owner email are skipped; slug collisions fall back to
// the repository's dedup behavior (existing record wins).

type businessRow struct {
	ownerEmail  string
	name        string
	description string
}

type campaignRow struct {
	businessName   string
	name           string
	description    string
	stampsRequired int
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Store); err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run storage migration:", err)
	}

	store := db.GetStore()
	userRepo := repository.NewUserRepository(store)
	businessRepo := repository.NewBusinessRepository(store)
	campaignRepo := repository.NewCampaignRepository(store)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	businesses, campaigns, err := readImportFile(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total businesses to import: %d\n", len(businesses))
	fmt.Printf("Total campaigns to import: %d\n", len(campaigns))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	importedBusinesses := 0
	skippedBusinesses := 0
	for _, row := range businesses {
		owner, err := userRepo.FindByEmail(row.ownerEmail)
		if err != nil {
			log.Fatal("Failed to look up owner:", err)
		}
		if owner == nil {
			fmt.Printf("  Skipping %q: no account for %s\n", row.name, row.ownerEmail)
			skippedBusinesses++
			continue
		}

		if _, err := businessRepo.Add(model.Business{
			Name:        row.name,
			Description: row.description,
			OwnerID:     owner.ID,
		}); err != nil {
			log.Fatal("Failed to create business:", err)
		}
		importedBusinesses++

		if importedBusinesses%100 == 0 {
			fmt.Printf("Processed %d businesses...\n", importedBusinesses)
		}
	}

	importedCampaigns := 0
	skippedCampaigns := 0
	for _, row := range campaigns {
		business, err := businessRepo.FindBySlug(model.GenerateSlug(row.businessName))
		if err != nil {
			log.Fatal("Failed to look up business:", err)
		}
		if business == nil {
			fmt.Printf("  Skipping campaign %q: unknown business %q\n", row.name, row.businessName)
			skippedCampaigns++
			continue
		}

		if _, err := campaignRepo.Add(model.Campaign{
			BusinessID:     business.ID,
			Name:           row.name,
			Description:    row.description,
			StampsRequired: row.stampsRequired,
			Active:         true,
			OwnerID:        business.OwnerID,
		}); err != nil {
			log.Fatal("Failed to create campaign:", err)
		}
		importedCampaigns++
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("  Businesses imported: %d (skipped: %d)\n", importedBusinesses, skippedBusinesses)
	fmt.Printf("  Campaigns imported: %d (skipped: %d)\n", importedCampaigns, skippedCampaigns)
}

func readImportFile(filePath string) ([]businessRow, []campaignRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	businesses, err := readBusinessRows(f, sheetName)
	if err != nil {
		return nil, nil, err
	}

	var campaigns []campaignRow
	if idx, _ := f.GetSheetIndex("Campaigns"); idx >= 0 {
		campaigns, err = readCampaignRows(f, "Campaigns")
		if err != nil {
			return nil, nil, err
		}
	}

	return businesses, campaigns, nil
}

func readBusinessRows(f *excelize.File, sheetName string) ([]businessRow, error) {
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var result []businessRow
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skipped++
			continue
		}

		ownerEmail := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		description := ""
		if len(row) > 2 {
			description = strings.TrimSpace(row[2])
		}

		if ownerEmail == "" || !isValidBusinessName(name) {
			skipped++
			continue
		}

		// Duplicate rows collapse to one create; the repository dedupes by
		// slug anyway, this just keeps the counts honest.
		key := model.GenerateSlug(name)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		result = append(result, businessRow{
			ownerEmail:  ownerEmail,
			name:        name,
			description: description,
		})
	}

	fmt.Printf("  Valid businesses: %d, skipped rows: %d\n", len(result), skipped)
	return result, nil
}

func readCampaignRows(f *excelize.File, sheetName string) ([]campaignRow, error) {
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var result []campaignRow
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 2 {
			skipped++
			continue
		}

		businessName := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		description := ""
		if len(row) > 2 {
			description = strings.TrimSpace(row[2])
		}

		stampsRequired := 10
		if len(row) > 3 {
			if n, err := strconv.Atoi(strings.TrimSpace(row[3])); err == nil && n > 0 {
				stampsRequired = n
			}
		}

		if businessName == "" || !isValidBusinessName(name) {
			skipped++
			continue
		}

		result = append(result, campaignRow{
			businessName:   businessName,
			name:           name,
			description:    description,
			stampsRequired: stampsRequired,
		})
	}

	fmt.Printf("  Valid campaigns: %d, skipped rows: %d\n", len(result), skipped)
	return result, nil
}

// isValidBusinessName filters out junk rows: too-short names, digits-only
// names, and rows that are nothing but punctuation.
func isValidBusinessName(name string) bool {
	if len([]rune(name)) < 3 {
		return false
	}

	numOnlyReg := regexp.MustCompile(`^[0-9]+$`)
	if numOnlyReg.MatchString(name) {
		return false
	}

	specialOnlyReg := regexp.MustCompile(`^[\p{P}\p{S}\s]+$`)
	if specialOnlyReg.MatchString(name) {
		return false
	}

	return true
}
