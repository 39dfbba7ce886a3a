package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	TLSCert string
	TLSKey  string

	// TokenKey signs session cookies.
	TokenKey []byte
	// AdminLogin and AdminPasswordHash (bcrypt) guard the export endpoints.
	AdminLogin        string
	AdminPasswordHash string

	LogLevel string
	LogDev   bool

	CacheSize int
	RateLimit float64
	RateBurst int

	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		AdminLogin:      "admin",
		LogLevel:        "info",
		CacheSize:       256,
		RateLimit:       5,
		RateBurst:       10,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load reads a .env file if one exists, then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var errs []error

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("ADDR", &cfg.Addr)
	str("TLS_CERT", &cfg.TLSCert)
	str("TLS_KEY", &cfg.TLSKey)
	str("ADMIN_LOGIN", &cfg.AdminLogin)
	str("ADMIN_PASSWORD_HASH", &cfg.AdminPasswordHash)
	str("LOG_LEVEL", &cfg.LogLevel)
	integer("CACHE_SIZE", &cfg.CacheSize)
	integer("RATE_BURST", &cfg.RateBurst)

	if v := getenv("TOKEN_KEY"); v != "" {
		cfg.TokenKey = []byte(v)
	}
	if v := getenv("LOG_DEV"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("LOG_DEV: %w", err))
		}
		cfg.LogDev = b
	}
	if v := getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT: %w", err))
		}
		cfg.RateLimit = f
	}
	if v := getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
		}
		cfg.ShutdownTimeout = d
	}

	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		errs = append(errs, errors.New("TLS_CERT and TLS_KEY must be set together"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AuthEnabled reports whether the export endpoints require a session.
func (c Config) AuthEnabled() bool {
	return len(c.TokenKey) > 0 && c.AdminPasswordHash != ""
}

func (c Config) TLS() bool {
	return c.TLSCert != ""
}
