package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the adapter configuration
type Config struct {
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Identity IdentityConfig `mapstructure:"identity"`
	Log      LogConfig      `mapstructure:"log"`
}

// MongoConfig holds document database configuration
type MongoConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKey       string        `mapstructure:"access_key"`
	Database        string        `mapstructure:"database"`
	UsersCollection string        `mapstructure:"users_collection"`
	RolesCollection string        `mapstructure:"roles_collection"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// IdentityConfig holds identity-store behavior configuration
type IdentityConfig struct {
	TenantID string      `mapstructure:"tenant_id"`
	Token    TokenConfig `mapstructure:"token"`
}

// TokenConfig holds identity token signing configuration
type TokenConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
	Encoding    string `mapstructure:"encoding"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/mongo-identity")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional; env vars and defaults are enough
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("mongo.endpoint", "mongodb://localhost:27017")
	viper.SetDefault("mongo.access_key", "")
	viper.SetDefault("mongo.database", "identity")
	viper.SetDefault("mongo.users_collection", "users")
	viper.SetDefault("mongo.roles_collection", "roles")
	viper.SetDefault("mongo.connect_timeout", "5s")

	viper.SetDefault("identity.tenant_id", "global")
	viper.SetDefault("identity.token.secret", "dev-token-secret-change-in-production")
	viper.SetDefault("identity.token.issuer", "mongo-identity")
	viper.SetDefault("identity.token.expiration", "24h")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.environment", "development")
	viper.SetDefault("log.encoding", "console")
}

// validateConfig validates the loaded configuration
func validateConfig(cfg *Config) error {
	if cfg.Mongo.Endpoint == "" {
		return fmt.Errorf("mongo endpoint cannot be empty")
	}

	if cfg.Mongo.Database == "" {
		return fmt.Errorf("mongo database cannot be empty")
	}

	if cfg.Mongo.UsersCollection == "" {
		return fmt.Errorf("mongo users collection cannot be empty")
	}

	if cfg.Mongo.RolesCollection == "" {
		return fmt.Errorf("mongo roles collection cannot be empty")
	}

	if cfg.Mongo.ConnectTimeout < time.Second {
		return fmt.Errorf("mongo connect timeout must be at least 1 second")
	}

	if cfg.Identity.TenantID == "" {
		return fmt.Errorf("tenant id cannot be empty")
	}

	if len(cfg.Identity.Token.Secret) < 8 {
		return fmt.Errorf("token secret must be at least 8 characters long")
	}

	if cfg.Identity.Token.Expiration < time.Minute {
		return fmt.Errorf("token expiration must be at least 1 minute")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, cfg.Log.Level) {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	validEncodings := []string{"json", "console"}
	if !contains(validEncodings, cfg.Log.Encoding) {
		return fmt.Errorf("invalid log encoding: %s", cfg.Log.Encoding)
	}

	return nil
}

// IsProduction returns true if the environment is production
func (l *LogConfig) IsProduction() bool {
	return strings.ToLower(l.Environment) == "production"
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
