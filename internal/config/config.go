package config

import (
	"os"
)

const (
	BackendPostgres = "postgres"
	BackendLocal    = "local"
)

type Config struct {
	Port         string
	AllowOrigins string
	Backend      string // postgres or local
	DataDir      string // local backend only

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		Port:         getenv("PORT", "8080"),
		AllowOrigins: getenv("ALLOW_ORIGINS", "*"),
		Backend:      getenv("LEDGER_BACKEND", BackendLocal),
		DataDir:      getenv("DATA_DIR", "./data"),
		DBHost:       getenv("DB_HOST", "localhost"),
		DBPort:       getenv("DB_PORT", "5432"),
		DBUser:       getenv("DB_USER", "postgres"),
		DBPassword:   getenv("DB_PASSWORD", ""),
		DBName:       getenv("DB_NAME", "gestao"),
		DBSSLMode:    getenv("DB_SSLMODE", "disable"),
	}
}
