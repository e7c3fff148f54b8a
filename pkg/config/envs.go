package config

// EnvPrefix scopes every environment variable read by Load.
const EnvPrefix = "BREWPOINT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "BREWPOINT_APP_ENV"
	EnvPort      = "BREWPOINT_APP_PORT"
	EnvDBDSN     = "BREWPOINT_DB_DSN"
	EnvDBHost    = "BREWPOINT_DB_HOST"
	EnvDBUser    = "BREWPOINT_DB_USER"
	EnvDBName    = "BREWPOINT_DB_NAME"
	EnvRedisURL  = "BREWPOINT_REDIS_URL"
	EnvRedisAddr = "BREWPOINT_REDIS_ADDR"
	EnvCartTTL   = "BREWPOINT_CART_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
