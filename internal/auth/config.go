package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	Secret string
	TTL    time.Duration
}

// ConfigFromEnv reads JWT_SECRET and JWT_TTL. In dev mode (LOG_DEV=1) a
// missing secret is replaced by a random one, so tokens do not survive restarts.
func ConfigFromEnv() (Config, error) {
	ttl := 24 * time.Hour
	if v, err := time.ParseDuration(os.Getenv("JWT_TTL")); err == nil && v > 0 {
		ttl = v
	}
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		if os.Getenv("LOG_DEV") != "1" {
			return Config{}, errors.New("JWT_SECRET is required outside dev mode")
		}
		b := make([]byte, 48)
		if _, err := rand.Read(b); err != nil {
			return Config{}, err
		}
		secret = base64.RawURLEncoding.EncodeToString(b)
	}
	return Config{Secret: secret, TTL: ttl}, nil
}
