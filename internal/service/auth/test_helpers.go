package auth

import (
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/config"
)

// DefaultJWTConfig returns a configuration for JWT authentication suitable for testing.
func DefaultJWTConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes: 60,
		BCryptCost:           4,
	}
}

// NewTestJWTService creates a JWT service on DefaultJWTConfig whose clock is
// timeFunc. A nil timeFunc uses time.Now.
func NewTestJWTService(timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	svc, err := newHMACJWTService(DefaultJWTConfig(), timeFunc)
	if err != nil {
		// ALLOW-PANIC
		panic(fmt.Sprintf("failed to create test JWT service: %v", err))
	}
	return svc
}

// NewTestJWTServiceWithConfig creates a JWT service on cfg whose clock is
// timeFunc.
func NewTestJWTServiceWithConfig(cfg config.AuthConfig, timeFunc func() time.Time) (JWTService, error) {
	return newHMACJWTService(cfg, timeFunc)
}
