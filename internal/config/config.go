// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one is present), loads them into structured Go types and validates that
// the database settings are present.
//
// Two naming schemes are understood:
//   - the flat service variables (DB_HOST, DB_PORT, APP_PORT, LOG_LEVEL, ...)
//   - ITEMS_-prefixed variables for everything else, where "__" separates
//     nesting levels, e.g. ITEMS_REDIS__ADDRESS -> redis.address
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if any.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ServiceName identifies this service in logs and APM.
const ServiceName = "item-service"

// EnvPrefix is the prefix of the extended (nested) environment variables.
const EnvPrefix = "ITEMS_"

// listKeys are read as comma-separated lists.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// flatEnvKeys maps the flat service variables to koanf keys.
var flatEnvKeys = map[string]string{
	"DB_HOST":     "database.host",
	"DB_PORT":     "database.port",
	"DB_NAME":     "database.name",
	"DB_USER":     "database.user",
	"DB_PASSWORD": "database.password",
	"DB_SSLMODE":  "database.ssl_mode",
	"LOG_LEVEL":   "observability.logging.level",
	"APP_PORT":    "server.port",
}

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags name the key each field is read from. Only the
// database block carries `validate:"required"` tags; a failure there is
// reported as a warning, see MissingDatabaseSettings.
type Config struct {
	Primary       Primary             `koanf:"primary"`
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database"`
	Redis         RedisConfig         `koanf:"redis"`
	Integration   IntegrationConfig   `koanf:"integration"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port"`
	ReadTimeout        int      `koanf:"read_timeout"`
	WriteTimeout       int      `koanf:"write_timeout"`
	IdleTimeout        int      `koanf:"idle_timeout"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// RateLimit is the allowed requests per second per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
//
// There are no pool settings: a connection is opened per request.
type DatabaseConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Name     string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"ssl_mode"`
}

// RedisConfig contains Redis connection details.
// An empty Address disables item events.
type RedisConfig struct {
	Address string `koanf:"address"`
}

// IntegrationConfig holds third-party integration settings.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyEmail  string `koanf:"notify_email"`
	FromEmail    string `koanf:"from_email"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:         "5000",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Database: DatabaseConfig{
			Port:    5432,
			SSLMode: "prefer",
		},
		Integration: IntegrationConfig{
			FromEmail: "Items <onboarding@resend.dev>",
		},
		Observability: *DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig and validates the observability block.
//
// Missing database settings are not an error here.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// ITEMS_OBSERVABILITY__LOGGING__FORMAT -> observability.logging.format
	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(s, v string) (string, any) {
		key := strings.TrimPrefix(s, EnvPrefix)
		return envValue(strings.ReplaceAll(strings.ToLower(key), "__", "."), v)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load prefixed env variables: %w", err)
	}

	// Flat variables win over their prefixed spelling.
	err = k.Load(env.ProviderWithValue("", ".", func(s, v string) (string, any) {
		return envValue(flatEnvKeys[s], v)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env
	mainConfig.Observability.Logging.Level = NormalizeLogLevel(mainConfig.Observability.Logging.Level)

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func envValue(key, value string) (string, any) {
	if !listKeys[key] {
		return key, value
	}

	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return key, items
}

// MissingDatabaseSettings returns the names of the required database
// variables that are unset or empty, in a stable order.
func (c *Config) MissingDatabaseSettings() []string {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("koanf")
	})

	err := validate.Struct(c.Database)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	missing := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		missing = append(missing, envNameFor("database."+fieldErr.Field()))
	}
	return missing
}

func envNameFor(key string) string {
	for name, k := range flatEnvKeys {
		if k == key {
			return name
		}
	}
	return key
}

// IsLocal reports whether SQL statement tracing should be enabled.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
