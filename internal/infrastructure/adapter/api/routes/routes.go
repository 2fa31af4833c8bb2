package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/oakmall/consignment-ledger/internal/domain/port/core"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/oakmall/consignment-ledger/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	transactionHandler *handler.TransactionHandler,
	balanceHandler *handler.BalanceHandler,
	vendorHandler *handler.VendorHandler,
	settingsHandler *handler.SettingsHandler,
) {
	// Checkout and transaction reads
	transactionRoutes := router.Group("/transactions")
	{
		transactionRoutes.POST("", transactionHandler.Create)
		transactionRoutes.GET("", transactionHandler.GetAll)
		transactionRoutes.GET("/today", transactionHandler.GetToday)
		transactionRoutes.GET("/weekly", transactionHandler.GetWeekly)
		transactionRoutes.GET("/monthly", transactionHandler.GetMonthly)
		transactionRoutes.GET("/monthly/:year/:month", transactionHandler.GetByMonthYear)
		transactionRoutes.PUT("/items/:id", transactionHandler.UpdateItem)
		transactionRoutes.DELETE("/items/:id", transactionHandler.DeleteItem)
		transactionRoutes.DELETE("/:id", transactionHandler.Delete)
	}

	// Booth rental charges
	boothRoutes := router.Group("/booth-charges")
	{
		boothRoutes.POST("", balanceHandler.CreateBoothRental)
		boothRoutes.PUT("/:id", balanceHandler.UpdateBoothRental)
		boothRoutes.DELETE("/:id", balanceHandler.DeleteBoothRental)
	}

	// Payouts to vendors
	paymentRoutes := router.Group("/vendor-payments")
	{
		paymentRoutes.POST("", balanceHandler.CreateVendorPayment)
		paymentRoutes.PUT("/:id", balanceHandler.UpdateVendorPayment)
		paymentRoutes.DELETE("/:id", balanceHandler.DeleteVendorPayment)
	}

	// Manual balance settlements
	balancePaymentRoutes := router.Group("/balance-payments")
	{
		balancePaymentRoutes.POST("", balanceHandler.CreateBalancePayment)
		balancePaymentRoutes.PUT("/:id", balanceHandler.UpdateBalancePayment)
		balancePaymentRoutes.DELETE("/:id", balanceHandler.DeleteBalancePayment)
	}

	// Vendor lifecycle, balances and reports
	vendorRoutes := router.Group("/vendors")
	{
		vendorRoutes.POST("", vendorHandler.Create)
		vendorRoutes.GET("", vendorHandler.List)
		vendorRoutes.GET("/reports/monthly/:year/:month", vendorHandler.MonthlyReport)
		vendorRoutes.GET("/:id", vendorHandler.Get)
		vendorRoutes.DELETE("/:id", vendorHandler.Delete)
		vendorRoutes.PUT("/:id/balance", vendorHandler.SetBalance)
	}

	// Settings store
	settingsRoutes := router.Group("/settings")
	{
		settingsRoutes.GET("/:key", settingsHandler.Get)
		settingsRoutes.PUT("/:key", settingsHandler.Set)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
