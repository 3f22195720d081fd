// Package config loads the typed process configuration with viper.
// Precedence: flags, PEOPLEHUB_* environment, config file, defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/resilience"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/spf13/viper"
)

const EnvPrefix = "PEOPLEHUB"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Auth       AuthConfig       `mapstructure:"auth"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Embeddings EmbeddingsConfig `mapstructure:"embeddings"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Resilience ResilienceConfig `mapstructure:"resilience"`
	Expense    ExpenseConfig    `mapstructure:"expense"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	AppName string `mapstructure:"app_name"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN renders a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	QueueName string `mapstructure:"queue_name"`
}

type StorageConfig struct {
	Driver    string `mapstructure:"driver"` // s3 | local
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Region    string `mapstructure:"region"`
	LocalRoot string `mapstructure:"local_root"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	Issuer          string        `mapstructure:"issuer"`
}

type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type LLMConfig struct {
	DefaultProvider string         `mapstructure:"default_provider"`
	Gemini          ProviderConfig `mapstructure:"gemini"`
	OpenAI          ProviderConfig `mapstructure:"openai"`
	Timeout         time.Duration  `mapstructure:"timeout"`
}

type EmbeddingsConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type MatchingConfig struct {
	TopK int `mapstructure:"top_k"`
}

type ResilienceConfig struct {
	LLM         resilience.Policy `mapstructure:"llm"`
	VectorStore resilience.Policy `mapstructure:"vector_store"`
}

type ExpenseConfig struct {
	Policy ExpensePolicyConfig `mapstructure:"policy"`
}

type ExpensePolicyConfig struct {
	Limits               map[string]float64 `mapstructure:"limits"`
	ReceiptRequiredAbove float64            `mapstructure:"receipt_required_above"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Options converts the log section for logx.Configure
func (l LogConfig) Options() logx.Options {
	return logx.Options{
		Level:      l.Level,
		Format:     l.Format,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
	}
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5001)
	v.SetDefault("server.app_name", "PeopleHub API")

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "peoplehub")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.queue_name", "resume:ingest")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.prefix", "uploads")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.local_root", "./data")

	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_token_ttl", 168*time.Hour)
	v.SetDefault("auth.issuer", "peoplehub")

	v.SetDefault("llm.default_provider", "gemini")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("embeddings.model", "text-embedding-3-small")
	v.SetDefault("embeddings.cache_ttl", time.Hour)

	v.SetDefault("matching.top_k", 5)

	for _, name := range []string{"llm", "vector_store"} {
		p := resilience.DefaultPolicy()
		if name == "vector_store" {
			p.Timeout = 10 * time.Second
		}
		prefix := "resilience." + name + "."
		v.SetDefault(prefix+"max_retries", p.MaxRetries)
		v.SetDefault(prefix+"initial_interval", p.InitialInterval)
		v.SetDefault(prefix+"max_interval", p.MaxInterval)
		v.SetDefault(prefix+"multiplier", p.Multiplier)
		v.SetDefault(prefix+"timeout", p.Timeout)
		v.SetDefault(prefix+"breaker.max_failures", p.Breaker.MaxFailures)
		v.SetDefault(prefix+"breaker.open_timeout", p.Breaker.OpenTimeout)
		v.SetDefault(prefix+"breaker.half_open_max_requests", p.Breaker.HalfOpenMaxRequests)
	}

	v.SetDefault("expense.policy.limits", map[string]float64{
		"food":     50,
		"travel":   1000,
		"lodging":  300,
		"supplies": 200,
		"other":    100,
	})
	v.SetDefault("expense.policy.receipt_required_above", 75)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
}

// BindEnv makes PEOPLEHUB_DATABASE_HOST override database.host and so on
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// keys without defaults are invisible to Unmarshal unless bound
	for _, key := range []string{
		"database.host", "database.password",
		"redis.password",
		"storage.bucket",
		"auth.jwt_secret",
		"llm.gemini.api_key", "llm.openai.api_key",
		"embeddings.api_key",
		"log.file",
	} {
		_ = v.BindEnv(key)
	}
}

// Load decodes v into a Config. The config file, if any, must already be read.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	BindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errx.Wrap(err, "failed to decode configuration", errx.TypeValidation)
	}

	// the LLM timeout bounds each provider attempt
	if cfg.LLM.Timeout > 0 {
		cfg.Resilience.LLM.Timeout = cfg.LLM.Timeout
	}
	return &cfg, nil
}

// Requirement names a group of keys a subcommand needs
type Requirement string

const (
	RequireDatabase Requirement = "database"
	RequireAuth     Requirement = "auth"
)

// Validate checks the keys needed by the given requirements
func (c *Config) Validate(reqs ...Requirement) error {
	for _, r := range reqs {
		switch r {
		case RequireDatabase:
			if strings.TrimSpace(c.Database.Host) == "" {
				return missingKey("database.host")
			}
		case RequireAuth:
			if strings.TrimSpace(c.Auth.JWTSecret) == "" {
				return missingKey("auth.jwt_secret")
			}
		}
	}

	if c.Storage.Driver != "s3" && c.Storage.Driver != "local" {
		return errx.New("invalid configuration value", errx.TypeValidation).
			WithDetail("key", "storage.driver").
			WithDetail("value", c.Storage.Driver)
	}
	if c.Storage.Driver == "s3" && c.Storage.Bucket == "" {
		return missingKey("storage.bucket")
	}
	return nil
}

func missingKey(key string) error {
	return errx.New("missing required configuration key", errx.TypeValidation).
		WithDetail("key", key)
}
