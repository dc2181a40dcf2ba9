package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQL    = "sql"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	StoreBackend   string
	StoreKeyPrefix string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Invoice InvoiceConfig

	ExportDir        string
	LabelsConfigPath string
}

// InvoiceConfig seeds new drafts and controls totals.
type InvoiceConfig struct {
	DefaultLanguage       string
	DefaultThemeMode      string
	DefaultCurrency       string
	DefaultTheme          string
	DueDays               int
	InvoiceNumberTemplate string
	ClampPercentages      bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "fatura"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		StoreBackend:   normalizeStore(getenv("STORE_BACKEND", StoreSQL)),
		StoreKeyPrefix: getenv("STORE_KEY_PREFIX", "fatura:"),
		RedisAddr:      strings.TrimSpace(getenv("REDIS_ADDR", "localhost:6379")),
		RedisPassword:  strings.TrimSpace(getenv("REDIS_PASSWORD", "")),
		RedisDB:        int(getenvInt64("REDIS_DB", 0)),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "fatura"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBPath:            getenv("DATABASE_PATH", "fatura.db"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 2)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 10)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 300)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 60)),

		Invoice: InvoiceConfig{
			DefaultLanguage:       strings.ToLower(getenv("DEFAULT_LANGUAGE", "tr")),
			DefaultThemeMode:      strings.ToLower(getenv("DEFAULT_THEME_MODE", "dark")),
			DefaultCurrency:       strings.ToUpper(getenv("DEFAULT_CURRENCY", "TRY")),
			DefaultTheme:          getenv("DEFAULT_THEME", "classic"),
			DueDays:               int(getenvInt64("DUE_DAYS", 30)),
			InvoiceNumberTemplate: getenv("INVOICE_NUMBER_TEMPLATE", "{SEQ}"),
			ClampPercentages:      getenvBool("CLAMP_PERCENTAGES", false),
		},

		ExportDir:        getenv("EXPORT_DIR", "."),
		LabelsConfigPath: strings.TrimSpace(getenv("LABELS_CONFIG_PATH", "")),
	}
}

func normalizeStore(raw string) string {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case StoreMemory, StoreRedis, StoreSQL:
		return value
	default:
		return StoreSQL
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
