package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. FITTRACK_SERVER_PORT.
const EnvPrefix = "FITTRACK"

// keys lists every configuration key so that environment variables are
// picked up by Unmarshal even when no default or file value exists.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.error_log_path",
	"server.sentry_dsn",
	"server.environment",
	"server.trust_proxy",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime_minutes",
	"auth.jwt_secret",
	"auth.token_lifetime_minutes",
	"auth.bcrypt_cost",
	"i18n.default_locale",
	"i18n.supported_locales",
	"rate_limit.requests_per_second",
	"rate_limit.burst",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the cross-field rules viper cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if !slices.Contains(cfg.I18n.SupportedLocales, cfg.I18n.DefaultLocale) {
		return fmt.Errorf(
			"config validation failed: default locale %q is not in supported locales %v",
			cfg.I18n.DefaultLocale,
			cfg.I18n.SupportedLocales,
		)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.error_log_path", "logs/error.log")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("auth.token_lifetime_minutes", 1440)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("i18n.default_locale", "en")
	v.SetDefault("i18n.supported_locales", []string{"en", "sk"})
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)
}
