package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
)

// FallbackJWTSecret is only acceptable outside production.
const FallbackJWTSecret = "123123"

const (
	defaultPort         = "3000"
	defaultTimeoutSecs  = 180
	defaultTokenTTLHrs  = 24 * 7
	defaultBcryptCost   = 10
	defaultMaxBodyBytes = 1 << 20
)

// Config is built once at startup and passed to the components that need it.
type Config struct {
	Env  string
	Port string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	JWTSecret         string
	JWTSecretSSMParam string
	TokenTTL          time.Duration
	BcryptCost        int

	AcceptedOrigins []string
	MaxBodyBytes    int64

	DatabaseURL string
	ReplicaURLs []string
	AutoMigrate bool

	GenerateModels bool

	LogLevel  string
	LogFormat string
}

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetList splits a comma separated value, dropping blank entries.
func GetList(config map[string]string, key string, defaultValue []string) []string {
	s, ok := config[key]
	if !ok || strings.TrimSpace(s) == "" {
		return defaultValue
	}

	var list []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, part)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

// Load reads the environment map into a Config. It does not validate it.
func Load(c map[string]string) Config {
	return Config{
		Env:  strings.ToLower(GetString(c, "APP_ENV", "development")),
		Port: GetString(c, "PORT", defaultPort),

		ReadTimeout:  time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", defaultTimeoutSecs)) * time.Second,
		WriteTimeout: time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", defaultTimeoutSecs)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", defaultTimeoutSecs)) * time.Second,

		JWTSecret:         GetString(c, "JWT_SECRET", ""),
		JWTSecretSSMParam: GetString(c, "JWT_SECRET_SSM_PARAM", ""),
		TokenTTL:          time.Duration(GetInt(c, "JWT_TTL_HOURS", defaultTokenTTLHrs)) * time.Hour,
		BcryptCost:        GetInt(c, "BCRYPT_COST", defaultBcryptCost),

		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS", []string{"*"}),
		MaxBodyBytes:    int64(GetInt(c, "MAX_BODY_BYTES", defaultMaxBodyBytes)),

		DatabaseURL: databaseURL(c),
		ReplicaURLs: GetList(c, "DB_REPLICA_URLS", nil),
		AutoMigrate: GetBool(c, "AUTO_MIGRATE", false),

		GenerateModels: GetBool(c, "GENERATE_MODELS", false),

		LogLevel:  GetString(c, "LOG_LEVEL", "info"),
		LogFormat: GetString(c, "LOG_FORMAT", "console"),
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles a keyword DSN.
func databaseURL(c map[string]string) string {
	if url := GetString(c, "DATABASE_URL", ""); url != "" {
		return url
	}
	host := GetString(c, "DB_HOST", "")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		GetString(c, "DB_USER", ""),
		GetString(c, "DB_PASSWORD", ""),
		GetString(c, "DB_NAME", ""),
		GetString(c, "DB_PORT", "5432"),
		GetString(c, "DB_SSLMODE", "require"),
	)
}

func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate applies the signing key policy: outside production a missing key
// falls back to FallbackJWTSecret, in production it is an error.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errs.NewConfigError("DATABASE_URL", errs.ErrConfigMissing)
	}

	if c.IsProduction() {
		if c.JWTSecret == "" {
			return errs.NewConfigError("JWT_SECRET", errs.ErrConfigMissing)
		}
		if c.JWTSecret == FallbackJWTSecret {
			return errs.NewConfigError("JWT_SECRET", errs.ErrConfigInvalid)
		}
	} else if c.JWTSecret == "" {
		c.JWTSecret = FallbackJWTSecret
	}

	if c.TokenTTL <= 0 {
		return errs.NewConfigError("JWT_TTL_HOURS", errs.ErrConfigInvalid)
	}
	return nil
}
