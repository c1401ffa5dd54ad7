package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	RPCURL           string
	SignerKeys       []string
	DisperseContract string
	AllowedOrigins   []string
	DatabaseURL      string
	GeoIPDBPath      string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	TxConfirmTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		RPCURL:           os.Getenv("RPC_URL"),
		SignerKeys:       splitList(os.Getenv("TX_SIGNER_KEYS")),
		DisperseContract: os.Getenv("DISPERSE_CONTRACT"),
		AllowedOrigins:   splitList(os.Getenv("ALLOWED_ORIGINS")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 120)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		TxConfirmTimeout: time.Second * time.Duration(getEnvInt("TX_CONFIRM_TIMEOUT_SECONDS", 90)),
	}

	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC_URL is required")
	}

	if len(cfg.SignerKeys) == 0 {
		return nil, fmt.Errorf("TX_SIGNER_KEYS is required")
	}

	if !common.IsHexAddress(cfg.DisperseContract) {
		return nil, fmt.Errorf("DISPERSE_CONTRACT must be a hex address, got %q", cfg.DisperseContract)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
