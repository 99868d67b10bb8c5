package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookkeeping-backend/category"
	"bookkeeping-backend/client"
	"bookkeeping-backend/config"
	"bookkeeping-backend/expense"
	"bookkeeping-backend/income"
	"bookkeeping-backend/logger"
	"bookkeeping-backend/middleware"
	"bookkeeping-backend/receipt"
	"bookkeeping-backend/report"
	"bookkeeping-backend/storage"
	"bookkeeping-backend/supplier"
	"bookkeeping-backend/upload"
	"bookkeeping-backend/users"
	"bookkeeping-backend/version"
)

func main() {
	cfg := LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := storage.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warnf("Mongo disconnect: %v", err)
		}
	}()
	log.Info("Connected to MongoDB")

	db := mongoClient.Database(cfg.GetDatabaseName())
	if err := storage.EnsureIndexes(ctx, db, cfg); err != nil {
		return err
	}

	clients := storage.NewCollection[client.Client](db, cfg.CollectionClientsName)
	suppliers := storage.NewCollection[supplier.Supplier](db, cfg.CollectionSuppliersName)
	categories := storage.NewCollection[category.Category](db, cfg.CollectionCategoriesName)
	incomes := storage.NewCollection[income.Income](db, cfg.CollectionIncomesName)
	expenses := storage.NewCollection[expense.Expense](db, cfg.CollectionExpensesName)
	receipts := storage.NewCollection[receipt.Receipt](db, cfg.CollectionReceiptsName)
	userDocs := storage.NewCollection[users.User](db, cfg.CollectionUsersName)

	clientHandler := client.NewHandler(clients)
	supplierHandler := supplier.NewHandler(suppliers)
	categoryHandler := category.NewHandler(categories)
	incomeHandler := income.NewHandler(incomes, clients)
	expenseHandler := expense.NewHandler(expenses, suppliers, categories)
	receiptHandler := receipt.NewHandler(receipts)
	userHandler := users.NewHandler(userDocs)
	reportHandler := report.NewHandler(incomes, expenses)
	uploadHandler := upload.NewHandler(clients, incomes)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())

	api := r.Group("/api")

	api.GET("/version", func(c *gin.Context) {
		info := version.GetInfo()
		info.ServerEnv = cfg.AppEnv
		info.DatabaseName = cfg.GetDatabaseName()
		c.JSON(http.StatusOK, info)
	})

	api.GET("/clients", clientHandler.HandleListClients)
	api.POST("/clients", clientHandler.HandleCreateClient)
	api.GET("/clients/:id", clientHandler.HandleGetClient)
	api.PUT("/clients/:id", clientHandler.HandleUpdateClient)
	api.DELETE("/clients/:id", clientHandler.HandleDeleteClient)

	api.GET("/suppliers", supplierHandler.HandleListSuppliers)
	api.POST("/suppliers", supplierHandler.HandleCreateSupplier)
	api.GET("/suppliers/:id", supplierHandler.HandleGetSupplier)
	api.PUT("/suppliers/:id", supplierHandler.HandleUpdateSupplier)
	api.DELETE("/suppliers/:id", supplierHandler.HandleDeleteSupplier)

	api.GET("/categories", categoryHandler.HandleListCategories)
	api.POST("/categories", categoryHandler.HandleCreateCategory)
	api.GET("/categories/:id", categoryHandler.HandleGetCategory)
	api.PUT("/categories/:id", categoryHandler.HandleUpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.HandleDeleteCategory)

	api.GET("/incomes", incomeHandler.HandleListIncomes)
	api.POST("/incomes", incomeHandler.HandleCreateIncome)
	api.GET("/incomes/:id", incomeHandler.HandleGetIncome)
	api.PUT("/incomes/:id", incomeHandler.HandleUpdateIncome)
	api.DELETE("/incomes/:id", incomeHandler.HandleDeleteIncome)

	api.GET("/expenses", expenseHandler.HandleListExpenses)
	api.POST("/expenses", expenseHandler.HandleCreateExpense)
	api.GET("/expenses/:id", expenseHandler.HandleGetExpense)
	api.PUT("/expenses/:id", expenseHandler.HandleUpdateExpense)
	api.DELETE("/expenses/:id", expenseHandler.HandleDeleteExpense)

	api.GET("/receipts", receiptHandler.HandleListReceipts)
	api.POST("/receipts", receiptHandler.HandleCreateReceipt)
	api.GET("/receipts/:id", receiptHandler.HandleGetReceipt)
	api.PUT("/receipts/:id", receiptHandler.HandleUpdateReceipt)
	api.DELETE("/receipts/:id", receiptHandler.HandleDeleteReceipt)
	api.GET("/receipts/:id/pdf", receiptHandler.HandleDownloadReceiptPDF)

	api.GET("/users", userHandler.HandleListUsers)
	api.POST("/users", userHandler.HandleCreateUser)
	api.GET("/users/:id", userHandler.HandleGetUser)
	api.PUT("/users/:id", userHandler.HandleUpdateUser)
	api.DELETE("/users/:id", userHandler.HandleDeleteUser)

	api.POST("/upload", uploadHandler.HandleUpload)

	api.GET("/reports/income-vs-expense", reportHandler.HandleIncomeVsExpense)
	api.GET("/reports/income-analysis", reportHandler.HandleIncomeAnalysis)
	api.GET("/reports/expense-analysis", reportHandler.HandleExpenseAnalysis)

	log.Infof("Starting bookkeeping backend server on port %s", cfg.Port)
	return r.Run(":" + cfg.Port)
}
