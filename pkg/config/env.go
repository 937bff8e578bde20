package config

const (
	EnvPrefix = "MARKET"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "MARKET_APP_ENV"
	EnvPort         = "MARKET_APP_PORT"
	EnvLogLevel     = "MARKET_LOG_LEVEL"
	EnvCORSOrigins  = "MARKET_CORS_ORIGINS"
	EnvMaxBodyBytes = "MARKET_MAX_BODY_BYTES"

	EnvDBDSN      = "MARKET_DB_DSN"
	EnvDBHost     = "MARKET_DB_HOST"
	EnvDBPort     = "MARKET_DB_PORT"
	EnvDBUser     = "MARKET_DB_USER"
	EnvDBPassword = "MARKET_DB_PASSWORD"
	EnvDBName     = "MARKET_DB_NAME"

	EnvRedisURL = "MARKET_REDIS_URL"

	EnvJWTSecret  = "MARKET_JWT_SECRET"
	EnvJWTIssuer  = "MARKET_JWT_ISSUER"
	EnvJWTExpMins = "MARKET_JWT_EXPIRATION_MINUTES"

	EnvSchemaCapsTTL = "MARKET_SCHEMA_CAPS_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
