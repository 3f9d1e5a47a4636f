package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	I18n      I18nConfig      `mapstructure:"i18n" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ErrorLogPath is the file that receives one JSON entry per 5xx response.
	// Empty disables the file sink.
	ErrorLogPath string `mapstructure:"error_log_path"`
	SentryDSN    string `mapstructure:"sentry_dsn" validate:"omitempty,url"`
	Environment  string `mapstructure:"environment" validate:"required"`
	// TrustProxy takes the client address from X-Forwarded-For and X-Real-IP.
	// Enable it only behind a proxy that overwrites those headers.
	TrustProxy bool `mapstructure:"trust_proxy"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=43200"`
	BCryptCost           int    `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// I18nConfig selects the response languages.
type I18nConfig struct {
	DefaultLocale    string   `mapstructure:"default_locale" validate:"required"`
	SupportedLocales []string `mapstructure:"supported_locales" validate:"required,min=1,dive,required"`
}

// RateLimitConfig bounds requests per client IP on the public auth routes.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=1"`
}
