package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

// clearEnv unsets every flat variable for the duration of the test so the
// host environment cannot leak into it.
func clearEnv(t *testing.T) {
	t.Helper()
	for name := range flatEnvKeys {
		t.Setenv(name, "") // restores the original value on cleanup
		if err := os.Unsetenv(name); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("Server.Port = %q, want 5000", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.SSLMode != "prefer" {
		t.Errorf("Database.SSLMode = %q, want prefer", cfg.Database.SSLMode)
	}
	if cfg.Observability.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Observability.Logging.Level)
	}
	if cfg.Observability.ServiceName != ServiceName {
		t.Errorf("ServiceName = %q, want %q", cfg.Observability.ServiceName, ServiceName)
	}
	if cfg.Server.RateLimit != 0 {
		t.Errorf("RateLimit = %v, want 0 (disabled)", cfg.Server.RateLimit)
	}
}

func TestLoadConfigFlatVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "inventory")
	t.Setenv("DB_USER", "svc")
	t.Setenv("DB_PASSWORD", "s3cr:t@")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("APP_PORT", "8080")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := DatabaseConfig{
		Host:     "db.internal",
		Port:     6543,
		User:     "svc",
		Password: "s3cr:t@",
		Name:     "inventory",
		SSLMode:  "require",
	}
	if !reflect.DeepEqual(cfg.Database, want) {
		t.Errorf("Database = %+v, want %+v", cfg.Database, want)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Observability.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Observability.Logging.Level)
	}
	if missing := cfg.MissingDatabaseSettings(); len(missing) != 0 {
		t.Errorf("MissingDatabaseSettings() = %v, want none", missing)
	}
}

func TestLoadConfigPrefixedVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("ITEMS_PRIMARY__ENV", "production")
	t.Setenv("ITEMS_REDIS__ADDRESS", "localhost:6379")
	t.Setenv("ITEMS_SERVER__RATE_LIMIT", "2.5")
	t.Setenv("ITEMS_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("ITEMS_OBSERVABILITY__HEALTH_CHECKS__TIMEOUT", "3s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Primary.Env != "production" || cfg.Observability.Environment != "production" {
		t.Errorf("env = %q/%q, want production", cfg.Primary.Env, cfg.Observability.Environment)
	}
	if cfg.Redis.Address != "localhost:6379" {
		t.Errorf("Redis.Address = %q", cfg.Redis.Address)
	}
	if cfg.Server.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v, want 2.5", cfg.Server.RateLimit)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, wantOrigins) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.Server.CORSAllowedOrigins, wantOrigins)
	}
	if cfg.Observability.HealthChecks.Timeout != 3*time.Second {
		t.Errorf("HealthChecks.Timeout = %v, want 3s", cfg.Observability.HealthChecks.Timeout)
	}
}

func TestLoadConfigCORSOriginsList(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{value: "https://a.example", want: []string{"https://a.example"}},
		{value: " https://a.example , https://b.example ,", want: []string{"https://a.example", "https://b.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("LOG_LEVEL", "info")
			t.Setenv("ITEMS_SERVER__CORS_ALLOWED_ORIGINS", tt.value)

			cfg, err := LoadConfig()
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if !reflect.DeepEqual(cfg.Server.CORSAllowedOrigins, tt.want) {
				t.Errorf("CORSAllowedOrigins = %q, want %q", cfg.Server.CORSAllowedOrigins, tt.want)
			}
		})
	}
}

func TestLoadConfigFlatWinsOverPrefixed(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("ITEMS_SERVER__PORT", "9000")
	t.Setenv("APP_PORT", "7000")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Errorf("Server.Port = %q, want 7000", cfg.Server.Port)
	}
}

func TestLoadConfigInvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "LOUD")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() error = nil, want invalid level error")
	}
}

func TestMissingDatabaseSettings(t *testing.T) {
	tests := []struct {
		name string
		db   DatabaseConfig
		want []string
	}{
		{
			name: "nothing set",
			db:   DatabaseConfig{Port: 5432},
			want: []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"},
		},
		{
			name: "only password missing",
			db:   DatabaseConfig{Host: "h", User: "u", Name: "n", Port: 5432},
			want: []string{"DB_PASSWORD"},
		},
		{
			name: "complete",
			db:   DatabaseConfig{Host: "h", User: "u", Password: "p", Name: "n"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Database = tt.db

			got := cfg.MissingDatabaseSettings()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingDatabaseSettings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := map[string]string{
		"DEBUG":    "debug",
		" info ":   "info",
		"WARNING":  "warn",
		"warn":     "warn",
		"ERROR":    "error",
		"CRITICAL": "fatal",
		"":         "",
	}

	for in, want := range tests {
		if got := NormalizeLogLevel(in); got != want {
			t.Errorf("NormalizeLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestObservabilityGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "development"
	if got := cfg.GetLogLevel(); got != "debug" {
		t.Errorf("development default = %q, want debug", got)
	}

	cfg.Environment = "production"
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("production default = %q, want info", got)
	}

	cfg.Logging.Level = "error"
	if got := cfg.GetLogLevel(); got != "error" {
		t.Errorf("explicit level = %q, want error", got)
	}
}
