// Command seedcoa seeds a company's chart of accounts, optionally
// bootstrapping the company and its first admin user.
//
// With -file, accounts are read from an Excel sheet (columns: Code, Name,
// Nature, Parent Code); without it, the built-in default chart is used.
//
// Usage:
//
//	go run ./cmd/seedcoa -company acme
//	go run ./cmd/seedcoa -company acme -file chart.xlsx
//	go run ./cmd/seedcoa -company acme -create -name "Acme Traders" \
//	    -gstin 29ABCDE1234F1Z5 -state-code 29 \
//	    -admin-email admin@acme.example -admin-password changeme123
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"lekha/internal/config"
	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/repository/postgres"
	"lekha/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		companySlug   = flag.String("company", "", "company slug (required)")
		xlsxPath      = flag.String("file", "", "Excel chart file; omit to use the built-in default chart")
		create        = flag.Bool("create", false, "create the company and an admin user first")
		companyName   = flag.String("name", "", "company display name (with -create)")
		gstin         = flag.String("gstin", "", "company GSTIN (with -create)")
		stateCode     = flag.String("state-code", "", "company GST state code (with -create)")
		adminEmail    = flag.String("admin-email", "", "admin user email (with -create)")
		adminPassword = flag.String("admin-password", "", "admin user password (with -create)")
	)
	flag.Parse()

	if *companySlug == "" {
		return errors.New("-company is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	companyRepo := postgres.NewCompanyRepo(db)
	userRepo := postgres.NewUserRepo(db)
	accountRepo := postgres.NewAccountRepo(db)
	accountSvc := service.NewAccountService(accountRepo)

	if *create {
		if *companyName == "" || *adminEmail == "" || *adminPassword == "" {
			return errors.New("-create requires -name, -admin-email and -admin-password")
		}
		company := &domain.Company{
			ID:        uuid.New(),
			Name:      *companyName,
			Slug:      *companySlug,
			GSTIN:     *gstin,
			StateCode: *stateCode,
			IsActive:  true,
		}
		if err := companyRepo.Create(ctx, company); err != nil {
			return fmt.Errorf("creating company: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		admin := &domain.User{
			ID:           uuid.New(),
			CompanyID:    company.ID,
			Email:        *adminEmail,
			PasswordHash: string(hash),
			FullName:     "Administrator",
			Role:         domain.RoleAdmin,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return fmt.Errorf("creating admin user: %w", err)
		}
		log.Printf("created company %q (%s) with admin %s", company.Name, company.ID, admin.Email)
	}

	company, err := companyRepo.GetBySlug(ctx, *companySlug)
	if err != nil {
		return fmt.Errorf("resolving company %q: %w", *companySlug, err)
	}

	if *xlsxPath == "" {
		created, err := accountSvc.SeedDefaultChart(ctx, company.ID)
		if err != nil {
			return fmt.Errorf("seeding default chart: %w", err)
		}
		log.Printf("seeded %d accounts from the default chart for %q", created, company.Slug)
		return nil
	}

	entries, err := readChartFile(*xlsxPath)
	if err != nil {
		return err
	}
	created, err := seedEntries(ctx, accountRepo, company.ID, entries)
	if err != nil {
		return err
	}
	log.Printf("seeded %d accounts from %s for %q", created, *xlsxPath, company.Slug)
	return nil
}

// readChartFile parses the first sheet of an Excel chart file. The first row
// is a header; rows must be ordered parents before children.
func readChartFile(path string) ([]domain.ChartEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var entries []domain.ChartEntry
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		cell := func(n int) string {
			if n < len(row) {
				return strings.TrimSpace(row[n])
			}
			return ""
		}
		code, name := cell(0), cell(1)
		nature := domain.AccountNature(strings.ToLower(cell(2)))
		if code == "" || name == "" {
			continue
		}
		if !domain.ValidAccountNatures[nature] {
			return nil, fmt.Errorf("row %d: unsupported nature %q", i+1, cell(2))
		}
		entries = append(entries, domain.ChartEntry{
			Code:       code,
			Name:       name,
			Nature:     nature,
			ParentCode: cell(3),
		})
	}
	if len(entries) == 0 {
		return nil, errors.New("no account rows found in Excel file")
	}
	return entries, nil
}

// seedEntries inserts chart entries, resolving parents by code and skipping
// codes that already exist.
func seedEntries(ctx context.Context, repo port.AccountRepository, companyID uuid.UUID, entries []domain.ChartEntry) (int, error) {
	created := 0
	byCode := make(map[string]*domain.Account)
	for _, entry := range entries {
		if existing, err := repo.GetByCode(ctx, companyID, entry.Code); err == nil {
			byCode[entry.Code] = existing
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return created, fmt.Errorf("checking code %s: %w", entry.Code, err)
		}

		account := &domain.Account{
			ID:        uuid.New(),
			CompanyID: companyID,
			Code:      entry.Code,
			Name:      entry.Name,
			Nature:    entry.Nature,
			Path:      entry.Code,
		}
		if entry.ParentCode != "" {
			parent, ok := byCode[entry.ParentCode]
			if !ok {
				return created, fmt.Errorf("account %s: parent code %s must appear earlier in the file", entry.Code, entry.ParentCode)
			}
			account.ParentID = &parent.ID
			account.Path = parent.Path + "/" + entry.Code
		}
		if err := repo.Create(ctx, account); err != nil {
			return created, fmt.Errorf("creating account %s: %w", entry.Code, err)
		}
		byCode[entry.Code] = account
		created++
	}
	return created, nil
}
