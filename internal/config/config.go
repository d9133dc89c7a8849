package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OrderIDScope controls how order-id uniqueness is enforced during import.
type OrderIDScope string

const (
	// OrderIDScopeMarketplace treats (orderId, marketplace) as the
	// idempotency key: the same external id may exist once per marketplace.
	OrderIDScopeMarketplace OrderIDScope = "marketplace"
	// OrderIDScopeGlobal treats the external orderId alone as unique.
	OrderIDScopeGlobal OrderIDScope = "global"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	Port        string
	Environment string

	// NATS
	NATSURL string

	// Import
	UploadTTL    time.Duration
	OrderIDScope OrderIDScope

	// CORS
	CORSAllowedOrigins []string

	// Pagination
	DefaultPageSize int
	MaxPageSize     int
}

func Load() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	uploadTTL, _ := strconv.Atoi(getEnv("UPLOAD_TTL_MINUTES", "30"))
	defaultPageSize, _ := strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "20"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))

	scope := OrderIDScope(getEnv("ORDER_ID_SCOPE", string(OrderIDScopeMarketplace)))
	if scope != OrderIDScopeMarketplace && scope != OrderIDScopeGlobal {
		scope = OrderIDScopeMarketplace
	}

	var origins []string
	if raw := getEnv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			origins = append(origins, strings.TrimSpace(o))
		}
	} else {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "warehouse_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		NATSURL: getEnv("NATS_URL", ""),

		UploadTTL:    time.Duration(uploadTTL) * time.Minute,
		OrderIDScope: scope,

		CORSAllowedOrigins: origins,

		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)

	var logLevel logger.LogLevel
	if cfg.Environment == "production" {
		logLevel = logger.Error
	} else {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
