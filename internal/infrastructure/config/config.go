package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Inventory InventoryConfig
	OTLP      OTLPConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

// StorageConfig locates the four flat files
type StorageConfig struct {
	DataDir       string
	ProductsFile  string
	SuppliersFile string
	OrdersFile    string
	SalesFile     string
}

type InventoryConfig struct {
	LowStockThreshold int
}

type OTLPConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Environment string
}

type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Storage: StorageConfig{
			DataDir:       getEnv("DATA_DIR", "data"),
			ProductsFile:  getEnv("PRODUCTS_FILE", "products.txt"),
			SuppliersFile: getEnv("SUPPLIERS_FILE", "suppliers.txt"),
			OrdersFile:    getEnv("ORDERS_FILE", "orders.txt"),
			SalesFile:     getEnv("SALES_FILE", "sales.txt"),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: getIntEnv("LOW_STOCK_THRESHOLD", 5),
		},
		OTLP: OTLPConfig{
			Enabled:     getBoolEnv("TELEMETRY_ENABLED", true),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "inventory-api"),
			Environment: getEnv("OTEL_ENVIRONMENT", "development"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "debug"),
		},
	}
}

// Path joins name onto the data directory
func (c StorageConfig) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
