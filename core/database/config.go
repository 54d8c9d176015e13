package database

import (
	"fmt"
	"net/url"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mysql"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:"minions"`
	// DSN overrides the DSN built from the fields above when set.
	DSN string `mapstructure:"dsn" default:""`
	// TimeoutSeconds bounds connection setup and every read and write.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// timeout returns the configured timeout, defaulting to 30 seconds.
func (c Config) timeout() int {
	if c.TimeoutSeconds <= 0 {
		return 30
	}
	return c.TimeoutSeconds
}

// MySQLDSN builds the go-sql-driver DSN.
// clientFoundRows makes UPDATE report matched rather than changed rows, so an
// update that rewrites identical values still counts as one affected row.
func (c Config) MySQLDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	// Special characters in the password must be URL encoded.
	userInfo := url.UserPassword(c.User, c.Password).String()
	t := c.timeout()
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, c.Host, c.Port, c.Name, t, t, t)
}

// SQLiteDSN returns the sqlite file path or DSN.
func (c Config) SQLiteDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return c.Name
}
