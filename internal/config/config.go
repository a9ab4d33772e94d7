package config // package config loads application configuration from environment variables

import (
	"os" // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Every value carries a hard-coded local default so
// the service starts on a developer machine with nothing set; deployments
// override through the environment (or a .env file loaded at bootstrap).
type Config struct {
	Env    string // application environment (e.g. "dev", "prod")
	Port   string // HTTP port to listen on
	DBUser string // database username
	DBPass string // database password (optional)
	DBHost string // database host address
	DBPort string // database port number
	DBName string // database name
}

// Load reads configuration values from environment variables and returns a
// Config.  Unset variables fall back to local defaults; nothing here is
// fatal.  Port 5000 mirrors the original deployment of this API.
func Load() Config {
	return Config{
		Env:    getenv("APP_ENV", "dev"),
		Port:   getenv("PORT", "5000"),
		DBUser: getenv("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"), // empty password allowed
		DBHost: getenv("DB_HOST", "localhost"),
		DBPort: getenv("DB_PORT", "3306"),
		DBName: getenv("DB_NAME", "gym_booking"),
	}
}
