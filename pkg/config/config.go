package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Schema        SchemaConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"MARKET_APP_ENV" required:"true"`
	Port         string   `envconfig:"MARKET_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"MARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"MARKET_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"MARKET_CORS_ORIGINS" default:"http://localhost:5173"`
	MaxBodyBytes int64    `envconfig:"MARKET_MAX_BODY_BYTES" default:"52428800"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "development")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type DBConfig struct {
	DSN string `envconfig:"MARKET_DB_DSN"`

	LegacyHost     string `envconfig:"MARKET_DB_HOST"`
	LegacyPort     int    `envconfig:"MARKET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MARKET_DB_USER"`
	LegacyPassword string `envconfig:"MARKET_DB_PASSWORD"`
	LegacyName     string `envconfig:"MARKET_DB_NAME"`
	LegacySSLMode  string `envconfig:"MARKET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MARKET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MARKET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MARKET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MARKET_DB_CONN_MAX_IDLE_TIME" default:"30s"`
	ConnectTimeout  time.Duration `envconfig:"MARKET_DB_CONNECT_TIMEOUT" default:"5s"`
}

// RedisConfig is optional; auth rate limiting is disabled when neither URL nor Address is set.
type RedisConfig struct {
	URL          string        `envconfig:"MARKET_REDIS_URL"`
	Address      string        `envconfig:"MARKET_REDIS_ADDR"`
	Password     string        `envconfig:"MARKET_REDIS_PASSWORD"`
	DB           int           `envconfig:"MARKET_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MARKET_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MARKET_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MARKET_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MARKET_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MARKET_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"MARKET_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MARKET_JWT_ISSUER" default:"aestheticmarket"`
	ExpirationMinutes int    `envconfig:"MARKET_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MARKET_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MARKET_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MARKET_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MARKET_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MARKET_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MARKET_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MARKET_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MARKET_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MARKET_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MARKET_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MARKET_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// SchemaConfig controls how long resolved product table capabilities are trusted.
type SchemaConfig struct {
	CapabilitiesTTL time.Duration `envconfig:"MARKET_SCHEMA_CAPS_TTL" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MARKET_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	q := u.Query()
	if db.LegacySSLMode != "" {
		q.Set("sslmode", db.LegacySSLMode)
	}
	if db.ConnectTimeout > 0 {
		q.Set("connect_timeout", fmt.Sprintf("%d", int(db.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()

	db.DSN = u.String()
	return nil
}
