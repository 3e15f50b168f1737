package config

const (
	// EnvPrefix is passed to envconfig; tags carry the full names so the
	// prefix stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBPath                  = "OAKPOS_DB_PATH"
	EnvOrdersTransactionPrefix = "OAKPOS_ORDERS_TRANSACTION_PREFIX"
	EnvOrdersIDRetryBudget     = "OAKPOS_ORDERS_ID_RETRY_BUDGET"
)
