package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseDriver string
	DatabaseURL    string

	JWTSecret        []byte
	SupplierPassword string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	GeminiAPIKey string
	GeminiModel  string

	ReportLocation *time.Location
	SeedDemoData   bool
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "furniture-supply"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseDriver: EnvDefault("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    EnvDefault("DATABASE_URL", "furniture_supply.db"),

		JWTSecret:        []byte(os.Getenv("JWT_SECRET")),
		SupplierPassword: EnvDefault("SUPPLIER_PASSWORD", "admin"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "catalog_items"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  EnvDefault("GEMINI_MODEL", "gemini-1.5-flash"),

		ReportLocation: LocationDefault("REPORT_TIMEZONE", "Asia/Tehran"),
		SeedDemoData:   EnvBoolDefault("SEED_DEMO_DATA", true),
	}

	MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	return cfg
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// LocationDefault falls back to UTC when neither the env value nor def can be loaded.
func LocationDefault(key, def string) *time.Location {
	name := EnvDefault(key, def)
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("warning: unknown time zone %q: %v, using UTC", name, err)
		return time.UTC
	}
	return loc
}
