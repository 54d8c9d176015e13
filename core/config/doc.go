// Package config provides configuration management for the mini-orm tools.
//
// It utilizes Viper for loading configuration from environment variables,
// a .env file and an optional config.yaml.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: driver, MySQL connection details or SQLite path, timeouts
//   - Log: Logging level and format
//   - Metrics: Prometheus endpoint toggle and namespace
//
// Defaults come from the `default` struct tags of each section. Environment
// variables use upper-case keys joined by underscores (DATABASE_DRIVER=sqlite).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
