package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lekha/internal/domain"
	"lekha/internal/handler"
	"lekha/internal/middleware"
	"lekha/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	voucherH *handler.VoucherHandler,
	accountH *handler.AccountHandler,
	fyH *handler.FinancialYearHandler,
	reportH *handler.ReportHandler,
	returnH *handler.ReturnHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Voucher routes
	vouchers := protected.Group("/vouchers")
	vouchers.POST("", voucherH.Create)
	vouchers.GET("", voucherH.List)
	vouchers.GET("/:id", voucherH.GetByID)
	vouchers.POST("/:id/post", voucherH.Post)
	vouchers.POST("/:id/reverse", voucherH.Reverse)
	vouchers.POST("/:id/attachments", voucherH.UploadAttachment)
	vouchers.GET("/:id/attachments", voucherH.ListAttachments)

	// Attachment routes
	attachments := protected.Group("/attachments")
	attachments.GET("/:id/download", voucherH.AttachmentDownloadURL)
	attachments.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleAccountant), voucherH.DeleteAttachment)

	// Chart of accounts
	accounts := protected.Group("/accounts")
	accounts.POST("", accountH.Create)
	accounts.GET("", accountH.List)
	accounts.GET("/:id", accountH.GetByID)
	accounts.GET("/:id/balance", accountH.Balance)

	// Financial years
	years := protected.Group("/financial-years")
	years.POST("", middleware.RequireRole(domain.RoleAdmin), fyH.Create)
	years.GET("", fyH.List)
	years.GET("/:id", fyH.GetByID)
	years.POST("/:id/close", fyH.Close)
	years.POST("/:id/reopen", fyH.Reopen)
	years.POST("/:id/set-current", middleware.RequireRole(domain.RoleAdmin), fyH.SetCurrent)

	// Reports
	reports := protected.Group("/reports")
	reports.GET("/trial-balance", reportH.TrialBalance)
	reports.GET("/profit-and-loss", reportH.ProfitAndLoss)
	reports.GET("/balance-sheet", reportH.BalanceSheet)

	// Statutory returns
	returns := protected.Group("/returns")
	returns.POST("/generate", returnH.Generate)
	returns.GET("", returnH.List)
	returns.GET("/:period/:type", returnH.GetByPeriod)
	returns.GET("/:period/:type/export", returnH.Export)

	return r
}
