package config

type Config struct {
	AppEnv                   string
	DatabaseURL              string
	DatabaseName             string
	Port                     string
	CollectionClientsName    string
	CollectionSuppliersName  string
	CollectionCategoriesName string
	CollectionIncomesName    string
	CollectionExpensesName   string
	CollectionReceiptsName   string
	CollectionUsersName      string
}

// IsDevelopment checks if the current environment is development
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction checks if the current environment is production
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetDatabaseName returns the appropriate database name based on environment
func (c *Config) GetDatabaseName() string {
	return c.DatabaseName
}
