package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"DB_HOST":                 "localhost",
		"DB_PORT":                 "5432",
		"DB_USER":                 "pms",
		"DB_PASSWORD":             "p@ss word",
		"DB_NAME":                 "darb",
		"DB_SSLMODE":              "",
		"JWT_SECRET_KEY":          "secret",
		"JWT_EXPIRATION_HOURS":    "",
		"APP_ENV":                 "",
		"SERVER_PORT":             "",
		"STORAGE_BACKEND":         "",
		"CORS_ALLOWED_ORIGINS":    "",
		"AUTH_RATE_LIMIT_PER_MIN": "",
		"INITIAL_ADMIN_USERNAME":  "",
	} {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration())
	assert.Equal(t, 30, cfg.AuthRateLimitPerMin)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, StorageBackendLocal, cfg.Storage.Backend)
	assert.Equal(t, "uploads", cfg.Storage.UploadsDir)
}

func TestLoad_MissingSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET_KEY", "   ")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_MissingDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_HOST", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"zero expiration", "JWT_EXPIRATION_HOURS", "0", "JWT_EXPIRATION_HOURS must be positive"},
		{"negative expiration", "JWT_EXPIRATION_HOURS", "-3", "JWT_EXPIRATION_HOURS must be positive"},
		{"malformed expiration", "JWT_EXPIRATION_HOURS", "abc", `invalid JWT_EXPIRATION_HOURS "abc"`},
		{"fractional expiration", "JWT_EXPIRATION_HOURS", "1.5", `invalid JWT_EXPIRATION_HOURS "1.5"`},
		{"malformed rate limit", "AUTH_RATE_LIMIT_PER_MIN", "lots", `invalid AUTH_RATE_LIMIT_PER_MIN "lots"`},
		{"zero rate limit", "AUTH_RATE_LIMIT_PER_MIN", "0", "AUTH_RATE_LIMIT_PER_MIN must be positive"},
		{"unknown backend", "STORAGE_BACKEND", "ftp", `unsupported STORAGE_BACKEND "ftp"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("STORAGE_BACKEND", "MinIO")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration())
	assert.Equal(t, StorageBackendMinio, cfg.Storage.Backend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadDBConfig_DSN(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadDBConfig()
	require.NoError(t, err)

	u, err := url.Parse(cfg.DSN)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "pms", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss word", pw)
	assert.Equal(t, "/darb", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}
