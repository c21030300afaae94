package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Which storage fields are required depends
// on Driver: the Mongo URI for the document backend, the DB_* quintet for
// the relational one.  The driver is read once here and passed to the
// repository factory; nothing else in the codebase consults it.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	Driver     string // storage backend: "mongodb" or "mysql"
	MongoURI   string // MongoDB connection string (mongodb driver)
	MongoDB    string // MongoDB database name (mongodb driver)
	DBUser     string // MySQL username (mysql driver)
	DBPass     string // MySQL password, optional (mysql driver)
	DBHost     string // MySQL host address (mysql driver)
	DBPort     string // MySQL port number (mysql driver)
	DBName     string // MySQL database name (mysql driver)
	StaticDir  string // directory served under /content/afisha
	LoggerType string // log line format: tskv, json or dev
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Only the variables
// of the selected storage driver are required.
func Load() Config {
	cfg := Config{
		Env:        must("APP_ENV"),                        // environment (dev/test/prod)
		Port:       must("APP_PORT"),                       // port to bind the HTTP server
		Driver:     getdef("DATABASE_DRIVER", "mongodb"),   // storage backend selection
		StaticDir:  getdef("STATIC_DIR", "public"),         // static content root
		LoggerType: getdef("LOGGER_TYPE", "dev"),           // log format
	}
	switch cfg.Driver {
	case "mongodb":
		cfg.MongoURI = must("DATABASE_URL")          // mongodb connection string
		cfg.MongoDB = getdef("DATABASE_NAME", "afisha") // database name
	case "mysql":
		cfg.DBUser = must("DB_USER")      // database user
		cfg.DBPass = os.Getenv("DB_PASS") // database password (empty allowed)
		cfg.DBHost = must("DB_HOST")      // database host
		cfg.DBPort = must("DB_PORT")      // database port
		cfg.DBName = must("DB_NAME")      // database name
	default:
		log.Fatalf("unknown DATABASE_DRIVER: %q (want mongodb or mysql)", cfg.Driver)
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getdef retrieves an optional environment variable with a default.
func getdef(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
