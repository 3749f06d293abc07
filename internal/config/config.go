package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageBackendLocal = "local"
	StorageBackendMinio = "minio"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET_KEY is unset.
// Callers must treat it as fatal: the server never starts without a secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY not set in environment")

// AppConfig is the process-wide configuration, loaded once before serving.
type AppConfig struct {
	Env                  string
	ServerPort           string
	LogLevel             string
	DB                   *DBConfig
	JWTSecret            string
	JWTExpirationHours   int64
	CORSAllowedOrigins   []string
	AuthRateLimitPerMin  int
	InitialAdminUsername string
	Storage              StorageConfig
}

// StorageConfig selects where project attachments are kept.
type StorageConfig struct {
	Backend        string
	UploadsDir     string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// IsProduction reports whether error details must be redacted.
func (c *AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// JWTExpiration returns the token lifetime.
func (c *AppConfig) JWTExpiration() time.Duration {
	return time.Duration(c.JWTExpirationHours) * time.Hour
}

// Load reads the application configuration from environment variables.
// The .env file, if any, must already have been loaded by the caller.
func Load() (*AppConfig, error) {
	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, err
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET_KEY"))
	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	jwtExpHours, err := getEnvPositiveInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	authRateLimit, err := getEnvPositiveInt("AUTH_RATE_LIMIT_PER_MIN", 30)
	if err != nil {
		return nil, err
	}

	storage := StorageConfig{
		Backend:        strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendLocal)),
		UploadsDir:     getEnv("UPLOADS_DIR", "uploads"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "pms-attachments"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
	if storage.Backend != StorageBackendLocal && storage.Backend != StorageBackendMinio {
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", storage.Backend)
	}

	return &AppConfig{
		Env:                  getEnv("APP_ENV", EnvDevelopment),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DB:                   dbCfg,
		JWTSecret:            jwtSecret,
		JWTExpirationHours:   jwtExpHours,
		CORSAllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174")),
		AuthRateLimitPerMin:  int(authRateLimit),
		InitialAdminUsername: getEnv("INITIAL_ADMIN_USERNAME", ""),
		Storage:              storage,
	}, nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

// getEnvPositiveInt returns fallback when key is unset. A set value that is
// not a positive integer is an error rather than a silent fallback.
func getEnvPositiveInt(key string, fallback int64) (int64, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", key, val)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, parsed)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
