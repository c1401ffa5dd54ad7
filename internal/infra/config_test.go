package infra

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("RPC_URL", "http://localhost:8545")
	t.Setenv("TX_SIGNER_KEYS", "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318")
	t.Setenv("DISPERSE_CONTRACT", "0x00000000000000000000000000000000000000cc")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppEnv != "development" {
		t.Fatalf("expected default env, got %q", cfg.AppEnv)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Fatalf("expected 120s write timeout, got %s", cfg.HTTPWriteTimeout)
	}
	if cfg.TxConfirmTimeout != 90*time.Second {
		t.Fatalf("expected 90s confirm timeout, got %s", cfg.TxConfirmTimeout)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("expected no allowed origins by default, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigAllowedOrigins(t *testing.T) {
	setRequired(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example, https://admin.example")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://app.example" {
		t.Fatalf("expected two parsed origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigSplitsSignerKeys(t *testing.T) {
	setRequired(t)
	t.Setenv("TX_SIGNER_KEYS", " aaa , bbb ,, ccc ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"aaa", "bbb", "ccc"}
	if len(cfg.SignerKeys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(cfg.SignerKeys))
	}
	for i := range want {
		if cfg.SignerKeys[i] != want[i] {
			t.Fatalf("key %d: expected %q, got %q", i, want[i], cfg.SignerKeys[i])
		}
	}
}

func TestLoadConfigRequiredFields(t *testing.T) {
	setRequired(t)
	t.Setenv("RPC_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without RPC_URL")
	}

	setRequired(t)
	t.Setenv("TX_SIGNER_KEYS", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without TX_SIGNER_KEYS")
	}

	setRequired(t)
	t.Setenv("DISPERSE_CONTRACT", "not-an-address")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for malformed contract address")
	}
}

func TestLoadConfigTimeoutOverride(t *testing.T) {
	setRequired(t)
	t.Setenv("TX_CONFIRM_TIMEOUT_SECONDS", "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TxConfirmTimeout != 30*time.Second {
		t.Fatalf("expected 30s confirm timeout, got %s", cfg.TxConfirmTimeout)
	}
}
