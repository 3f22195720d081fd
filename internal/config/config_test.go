package config

import (
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, "resume:ingest", cfg.Redis.QueueName)
	assert.Equal(t, "gemini", cfg.LLM.DefaultProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Gemini.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 60*time.Second, cfg.Resilience.LLM.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Resilience.VectorStore.Timeout)
	assert.Equal(t, uint32(5), cfg.Resilience.VectorStore.Breaker.MaxFailures)
	assert.Equal(t, 5, cfg.Matching.TopK)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 50.0, cfg.Expense.Policy.Limits["food"])
	assert.Equal(t, 75.0, cfg.Expense.Policy.ReceiptRequiredAbove)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PEOPLEHUB_DATABASE_HOST", "db.internal")
	t.Setenv("PEOPLEHUB_SERVER_PORT", "8080")
	t.Setenv("PEOPLEHUB_AUTH_JWT_SECRET", "s3cret")
	t.Setenv("PEOPLEHUB_LLM_TIMEOUT", "5s")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 5*time.Second, cfg.Resilience.LLM.Timeout)
	assert.NoError(t, cfg.Validate(RequireDatabase, RequireAuth))
}

func TestLoadFromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
database:
  host: pg
  port: 6543
storage:
  driver: s3
  bucket: resumes
matching:
  top_k: 3
`)))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 3, cfg.Matching.TopK)
	assert.Contains(t, cfg.Database.DSN(), "host=pg port=6543")
	assert.NoError(t, cfg.Validate(RequireDatabase))
}

func TestValidateNamesMissingKey(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	err = cfg.Validate(RequireDatabase)
	require.Error(t, err)
	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, errx.TypeValidation, e.Type)
	assert.Equal(t, "database.host", e.Details["key"])

	cfg.Database.Host = "localhost"
	err = cfg.Validate(RequireDatabase, RequireAuth)
	e, _ = errx.As(err)
	assert.Equal(t, "auth.jwt_secret", e.Details["key"])
}

func TestValidateStorageDriver(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	cfg.Storage.Driver = "ftp"
	assert.Error(t, cfg.Validate())

	cfg.Storage.Driver = "s3"
	e, _ := errx.As(cfg.Validate())
	require.NotNil(t, e)
	assert.Equal(t, "storage.bucket", e.Details["key"])
}
