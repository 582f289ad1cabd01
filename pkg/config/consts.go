package config

const EnvPrefix = "OPENSKY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "OPENSKY_APP_ENV"
	EnvPort   = "OPENSKY_APP_PORT"

	EnvDBDSN  = "OPENSKY_DB_DSN"
	EnvDBHost = "OPENSKY_DB_HOST"
	EnvDBUser = "OPENSKY_DB_USER"
	EnvDBName = "OPENSKY_DB_NAME"

	EnvRedisURL = "OPENSKY_REDIS_URL"

	EnvVerifySecret = "OPENSKY_VERIFY_SECRET"

	EnvNotifyBotToken = "OPENSKY_NOTIFY_BOT_TOKEN"
	EnvNotifyChatIDs  = "OPENSKY_NOTIFY_CHAT_IDS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
