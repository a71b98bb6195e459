package config

const EnvPrefix = "DIAMONDLAB"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "DIAMONDLAB_APP_ENV"
	EnvDBDSN  = "DIAMONDLAB_DB_DSN"
	EnvDBHost = "DIAMONDLAB_DB_HOST"
	EnvDBUser = "DIAMONDLAB_DB_USER"
	EnvDBName = "DIAMONDLAB_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
