package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/Govind-619/BooksWishlist/utils"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when no env file is requested explicitly
const DefaultEnvFile = ".env"

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	Port       string
	Env        string
	LogDir     string
	Storage    string
	// Traces turns on span export over OTLP/HTTP. The exporter itself
	// reads the standard OTEL_EXPORTER_OTLP_* variables.
	Traces bool
}

// LoadConfig loads configuration from a dotenv file and the environment.
// An empty envFile means DefaultEnvFile, which may be absent.
func LoadConfig(envFile string) (*Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s file: %w", envFile, err)
		}
	}

	config := &Config{
		DBHost:     getEnv("DB_HOST", utils.DefaultDBHost),
		DBPort:     getEnv("DB_PORT", utils.DefaultDBPort),
		DBUser:     getEnv("DB_USER", utils.DefaultDBUser),
		DBPassword: getEnv("DB_PASSWORD", utils.DefaultDBPassword),
		DBName:     getEnv("DB_NAME", utils.DefaultDBName),
		DBSSLMode:  getEnv("DB_SSLMODE", utils.DefaultDBSSLMode),
		Port:       getEnv("PORT", utils.DefaultPort),
		Env:        getEnv("ENV", "development"),
		LogDir:     getEnv("LOG_DIR", utils.DefaultLogDir),
		Storage:    getEnv("STORAGE", utils.StoragePostgres),
	}

	if raw := getEnv("OTEL_TRACES", ""); raw != "" {
		traces, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid OTEL_TRACES %q: %w", raw, err)
		}
		config.Traces = traces
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Storage {
	case utils.StoragePostgres, utils.StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q: want %q or %q", c.Storage, utils.StoragePostgres, utils.StorageMemory)
	}
	return nil
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
