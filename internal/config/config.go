package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	CORSAllowedOrigins []string

	Currency string

	// Membership defaults used to seed the settings store when the
	// database has no row yet.
	MembershipThreshold        int64 // sen
	EnablePromotionalExclusion bool
	MembershipConfigTTL        time.Duration

	EasyParcelAPIKey        string
	EasyParcelWebhookSecret string
	EasyParcelCredentialTTL time.Duration

	CartTTL         time.Duration
	CatalogCacheTTL time.Duration

	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	PasswordResetTTL  time.Duration
	AccessCookieName  string
	RefreshCookieName string
	CookieDomain      string
	CookieSecure      bool
	CookieSameSite    http.SameSite

	PublicBaseURL  string
	IdempotencyTTL time.Duration

	ShippingProvider  string
	EasyParcelBaseURL string
	NotifyShipping    bool

	NotifyEmailEnabled bool
	NotifyEmailFrom    string

	WebhookDeliveryEnabled bool
	WebhookMaxAttempts     int
	WebhookBackoffBaseSec  int
	WebhookReplayTTL       time.Duration
	WebhookRequestTimeout  time.Duration

	RateLimitAuthMax    int
	RateLimitAuthWindow time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		JWTSecret:          k.String("JWT_SECRET"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		Currency: valueOrDefault(k.String("CURRENCY"), "MYR"),

		MembershipThreshold:        parseInt64(k.String("MEMBERSHIP_THRESHOLD_SEN"), 8000),
		EnablePromotionalExclusion: parseBool(k.String("MEMBERSHIP_PROMO_EXCLUSION")),
		MembershipConfigTTL:        parseDuration(k.String("MEMBERSHIP_CONFIG_TTL"), "1m"),

		EasyParcelAPIKey:        k.String("EASYPARCEL_API_KEY"),
		EasyParcelWebhookSecret: k.String("EASYPARCEL_WEBHOOK_SECRET"),
		EasyParcelCredentialTTL: parseDuration(k.String("EASYPARCEL_CREDENTIAL_TTL"), "10m"),

		CartTTL:         parseDuration(k.String("CART_TTL"), "168h"),
		CatalogCacheTTL: parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),

		AccessTokenTTL:    parseDuration(k.String("ACCESS_TOKEN_TTL"), "15m"),
		RefreshTokenTTL:   parseDuration(k.String("REFRESH_TOKEN_TTL"), "720h"),
		PasswordResetTTL:  parseDuration(k.String("PASSWORD_RESET_TTL"), "1h"),
		AccessCookieName:  valueOrDefault(k.String("ACCESS_COOKIE_NAME"), "access_token"),
		RefreshCookieName: valueOrDefault(k.String("REFRESH_COOKIE_NAME"), "refresh_token"),
		CookieDomain:      strings.TrimSpace(k.String("COOKIE_DOMAIN")),
		CookieSecure:      parseBool(k.String("COOKIE_SECURE")),
		CookieSameSite:    parseSameSite(k.String("COOKIE_SAMESITE")),

		PublicBaseURL:  valueOrDefault(k.String("PUBLIC_BASE_URL"), "http://localhost:8080"),
		IdempotencyTTL: parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),

		ShippingProvider:  valueOrDefault(k.String("SHIPPING_PROVIDER"), "mock"),
		EasyParcelBaseURL: valueOrDefault(k.String("EASYPARCEL_BASE_URL"), "https://connect.easyparcel.my"),
		NotifyShipping:    parseBoolDefault(k.String("NOTIFY_SHIPPING"), true),

		NotifyEmailEnabled: parseBool(k.String("NOTIFY_EMAIL_ENABLED")),
		NotifyEmailFrom:    valueOrDefault(k.String("NOTIFY_EMAIL_FROM"), "noreply@storefront.my"),

		WebhookDeliveryEnabled: parseBoolDefault(k.String("WEBHOOK_DELIVERY_ENABLED"), true),
		WebhookMaxAttempts:     int(parseInt64(k.String("WEBHOOK_MAX_ATTEMPTS"), 6)),
		WebhookBackoffBaseSec:  int(parseInt64(k.String("WEBHOOK_BACKOFF_BASE_SEC"), 5)),
		WebhookReplayTTL:       parseDuration(k.String("WEBHOOK_REPLAY_TTL"), "10m"),
		WebhookRequestTimeout:  parseDuration(k.String("WEBHOOK_REQUEST_TIMEOUT"), "5s"),

		RateLimitAuthMax:    int(parseInt64(k.String("RATELIMIT_AUTH_MAX"), 10)),
		RateLimitAuthWindow: parseDuration(k.String("RATELIMIT_AUTH_WINDOW"), "1m"),
	}

	if cfg.CookieSameSite == http.SameSiteDefaultMode {
		cfg.CookieSameSite = http.SameSiteLaxMode
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt64(value string, fallback int64) int64 {
	base := strings.TrimSpace(value)
	if base == "" {
		return fallback
	}
	n, err := strconv.ParseInt(base, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseBoolDefault(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
