package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config is built once at process start and handed to every component that
// needs connection or runtime parameters.
type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8080"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`
	MySQLHost  string `envconfig:"MYSQL_HOST" default:"127.0.0.1"`
	MySQLPort  string `envconfig:"MYSQL_PORT" default:"3306"`
	MySQLDB    string `envconfig:"MYSQL_DB" default:"kindnesscup"`
	MySQLUser  string `envconfig:"MYSQL_USER" default:"root"`
	MySQLPass  string `envconfig:"MYSQL_PASS"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"kindnesscup.db"`

	// Empty RedisAddr disables submission de-duplication.
	RedisAddr    string `envconfig:"REDIS_ADDR"`
	RedisDB      int    `envconfig:"REDIS_DB" default:"0"`
	IdempTTLSecs int    `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"300"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// ExposeDBErrors shows raw database error text to end users. Local debugging only.
	ExposeDBErrors bool `envconfig:"EXPOSE_DB_ERRORS" default:"false"`
}

// Load reads the optional env files (".env" when none are given) and then the
// process environment. Values already present in the environment win.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverMySQL, DriverSQLite)
	}
	if c.RedisAddr != "" && c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=Local keeps donation_date in the server's calendar
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
