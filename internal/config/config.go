package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log" // echo's logger, used for fatal configuration errors
)

// Supported values for DB_DRIVER.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Cache, rate limit, Redis and broker settings
// have their own loaders because every one of them is optional.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	LogLevel       string // debug, info, warn or error
	DBDriver       string // mysql or postgres
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBSSLMode      string // postgres sslmode
	JWTSecret      string // secret used to sign staff access tokens
	AccessTTLMin   int    // access token time‑to‑live in minutes
	RefreshTTLDays int    // refresh token time‑to‑live in days
	BcryptCost     int    // bcrypt cost for password hashing
	Tracing        bool   // wrap SQL and HTTP in X-Ray segments
}

// LoadDotEnv reads a .env file into the process environment when one is
// present.  Variables that are already set win over the file.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Info("no .env file found, relying on OS environment variables")
	}
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		LogLevel:       strings.ToLower(envStr("LOG_LEVEL", "info")),
		DBDriver:       dbDriver(envStr("DB_DRIVER", DriverMySQL)),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBSSLMode:      envStr("DB_SSL_MODE", "disable"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		Tracing:        envBool("TRACING_ENABLED", false),
	}
}

// dbDriver accepts the common aliases of the two supported drivers and
// falls back to MySQL for anything else.
func dbDriver(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "postgres", "postgresql", "pg":
		return DriverPostgres
	default:
		return DriverMySQL
	}
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

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
