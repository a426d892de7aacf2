package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config centralises environment and runtime configuration.
type Config struct {
	Port     string
	JobStore string
	TaxRate  decimal.Decimal

	DatabaseURL string
	AutoMigrate bool

	KafkaBroker string
	KafkaTopic  string

	MercadoPagoAccessToken string
}

// Load builds the Config from the environment. A bad TAX_RATE or an unknown
// JOB_STORE is returned as an error; callers should not start serving.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		JobStore:               strings.ToLower(getEnvOrDefault("JOB_STORE", StoreDynamoDB)),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		AutoMigrate:            parseBoolEnv(getEnvOrDefault("AUTO_MIGRATE", "true")),
		KafkaBroker:            strings.TrimSpace(os.Getenv("KAFKA_BROKER")),
		KafkaTopic:             getEnvOrDefault("KAFKA_TOPIC", "job-events"),
		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
	}

	rate, err := parseTaxRate(getEnvOrDefault("TAX_RATE", "0"))
	if err != nil {
		return nil, err
	}
	cfg.TaxRate = rate

	switch cfg.JobStore {
	case StoreDynamoDB, StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("JOB_STORE=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown JOB_STORE %q", cfg.JobStore)
	}

	log.Printf("[config] loaded port=%s job_store=%s tax_rate=%s kafka=%t", cfg.Port, cfg.JobStore, cfg.TaxRate.String(), cfg.KafkaBroker != "")
	return cfg, nil
}

// parseTaxRate accepts a fraction in [0, 1), e.g. "0.1" for 10%.
func parseTaxRate(s string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid TAX_RATE %q: %w", s, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("invalid TAX_RATE %q: must be >= 0 and < 1", s)
	}
	return rate, nil
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseBoolEnv(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
