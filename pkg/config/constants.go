package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "printshop"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "PRINTSHOP_DB_DSN"
	EnvDBHost = "PRINTSHOP_DB_HOST"
	EnvDBUser = "PRINTSHOP_DB_USER"
	EnvDBName = "PRINTSHOP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
