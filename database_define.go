package main

import (
	"os"

	"github.com/joho/godotenv"

	"bookkeeping-backend/config"
	"bookkeeping-backend/logger"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *config.Config {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug(".env file not found, using process environment")
	}

	config := &config.Config{
		AppEnv:                   getEnv("APP_ENV", "development"),
		DatabaseURL:              getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DatabaseName:             getEnv("DATABASE_NAME", "Bookkeeping_Dev"),
		Port:                     getEnv("PORT", "3000"),
		CollectionClientsName:    "clients",
		CollectionSuppliersName:  "suppliers",
		CollectionCategoriesName: "categories",
		CollectionIncomesName:    "incomes",
		CollectionExpensesName:   "expenses",
		CollectionReceiptsName:   "receipts",
		CollectionUsersName:      "users",
	}

	return config
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
