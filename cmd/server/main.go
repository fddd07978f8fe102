package main

import (
	"fmt"
	"log"

	"lekha/internal/config"
	"lekha/internal/handler"
	"lekha/internal/repository/postgres"
	"lekha/internal/router"
	"lekha/internal/service"
	s3storage "lekha/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepo(db)
	userRepo := postgres.NewUserRepo(db)
	accountRepo := postgres.NewAccountRepo(db)
	fyRepo := postgres.NewFinancialYearRepo(db)
	voucherRepo := postgres.NewVoucherRepo(db)
	reportingRepo := postgres.NewReportingRepo(db)
	returnRepo := postgres.NewReturnRepo(db)
	attachmentRepo := postgres.NewAttachmentRepo(db)
	tx := postgres.NewTransactor(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, companyRepo, cfg.JWT)
	accountSvc := service.NewAccountService(accountRepo)
	fySvc := service.NewFinancialYearService(fyRepo, tx)
	voucherSvc := service.NewVoucherService(voucherRepo, accountRepo, fyRepo, tx)
	reportingSvc := service.NewReportingService(reportingRepo, accountRepo, fyRepo)
	returnSvc := service.NewReturnService(returnRepo)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, voucherRepo, s3Client, &cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	voucherH := handler.NewVoucherHandler(voucherSvc, attachmentSvc)
	accountH := handler.NewAccountHandler(accountSvc, reportingSvc)
	fyH := handler.NewFinancialYearHandler(fySvc)
	reportH := handler.NewReportHandler(reportingSvc)
	returnH := handler.NewReturnHandler(returnSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, voucherH, accountH, fyH, reportH, returnH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
