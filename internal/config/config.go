package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort string

	DBDriver   string
	DBLogLevel string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	SQLitePath string

	// empty disables the idempotency store and the customer lock
	RedisAddr string
	RedisDB   int

	IdempTTLSecs int
	LockTTLSecs  int

	CustomerDataPath string
	LoanDataPath     string
}

// LoadDotEnv copies KEY=value pairs from the given files (default .env)
// into the environment. Variables that are already set win.
func LoadDotEnv(files ...string) error {
	return godotenv.Load(files...)
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		DBDriver:   getenv("DB_DRIVER", DriverMySQL),
		DBLogLevel: getenv("DB_LOG_LEVEL", "warn"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "credit"),
		MySQLUser: getenv("MYSQL_USER", "credit"),
		MySQLPass: getenv("MYSQL_PASS", "credit"),

		SQLitePath: getenv("SQLITE_PATH", "credit.db"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),
		LockTTLSecs:  getint("LOCK_TTL_SECONDS", 10),

		CustomerDataPath: os.Getenv("CUSTOMER_DATA_PATH"),
		LoanDataPath:     os.Getenv("LOAN_DATA_PATH"),
	}
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
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	if c.IdempTTLSecs <= 0 || c.LockTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS and LOCK_TTL_SECONDS must be positive")
	}
	if (c.CustomerDataPath == "") != (c.LoanDataPath == "") {
		return errors.New("CUSTOMER_DATA_PATH and LOAN_DATA_PATH must be set together")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME; dates are written as UTC midnights
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) LockTTL() time.Duration { return time.Duration(c.LockTTLSecs) * time.Second }

func (c *Config) IngestionEnabled() bool { return c.CustomerDataPath != "" && c.LoanDataPath != "" }
