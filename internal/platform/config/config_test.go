package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	Load()

	assert.Equal(t, "8080", AppConfig.APIPort)
	assert.Equal(t, "user-token", AppConfig.CookieName)
	assert.Equal(t, 72*time.Hour, AppConfig.JWTExp)
	assert.Equal(t, 6, AppConfig.LatestNewsLimit)
	assert.Equal(t, 5, AppConfig.RecentStatsLimit)
	assert.Contains(t, AppConfig.DBConnStr, "dbname=newsportal_db")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("TOKEN_COOKIE_NAME", "session")
	t.Setenv("DB_NAME", "newsdb")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	Load()

	assert.Equal(t, "9090", AppConfig.APIPort)
	assert.Equal(t, time.Hour, AppConfig.JWTExp)
	assert.Equal(t, "session", AppConfig.CookieName)
	assert.Contains(t, AppConfig.DBConnStr, "dbname=newsdb")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AppConfig.CORSOrigins)
}
