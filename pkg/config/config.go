package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Orders       OrdersConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Orders.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"OAKPOS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"OAKPOS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"OAKPOS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Path is the sqlite database file. The default keeps the store next to
	// the binary the way the original desktop build did.
	Path        string        `envconfig:"OAKPOS_DB_PATH" default:"data/oakdonuts.db"`
	BusyTimeout time.Duration `envconfig:"OAKPOS_DB_BUSY_TIMEOUT" default:"5s"`

	MaxOpenConns    int           `envconfig:"OAKPOS_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"OAKPOS_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"OAKPOS_DB_CONN_MAX_LIFETIME" default:"0"`
	ConnMaxIdleTime time.Duration `envconfig:"OAKPOS_DB_CONN_MAX_IDLE_TIME" default:"0"`
}

// DSN renders the sqlite connection string with the pragmas the store relies
// on: foreign keys for order line cascades, busy timeout for the shared handle.
func (db DBConfig) DSN() string {
	path := db.Path
	if path == "" {
		path = "data/oakdonuts.db"
	}
	timeoutMS := int(db.BusyTimeout / time.Millisecond)
	if timeoutMS <= 0 {
		timeoutMS = 5000
	}
	return fmt.Sprintf("file:%s?_fk=1&_busy_timeout=%d", path, timeoutMS)
}

type OrdersConfig struct {
	// TransactionPrefix is prepended to every generated transaction id.
	TransactionPrefix string `envconfig:"OAKPOS_ORDERS_TRANSACTION_PREFIX" default:"OD-"`
	// IDRetryBudget bounds re-rolls when a generated id collides with a
	// stored order before checkout fails.
	IDRetryBudget int `envconfig:"OAKPOS_ORDERS_ID_RETRY_BUDGET" default:"5"`
	// StrictStatus switches the status transition graph from the permissive
	// any-to-any behavior to pending -> {completed, cancelled}, both terminal.
	StrictStatus bool `envconfig:"OAKPOS_ORDERS_STRICT_STATUS" default:"false"`
}

func (o OrdersConfig) validate() error {
	if strings.TrimSpace(o.TransactionPrefix) == "" {
		return fmt.Errorf("%s must not be blank", EnvOrdersTransactionPrefix)
	}
	if o.IDRetryBudget < 1 {
		return fmt.Errorf("%s must be at least 1", EnvOrdersIDRetryBudget)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"OAKPOS_AUTO_MIGRATE" default:"false"`
}
