package main

import (
	"os"
	"strconv"
	"time"
)

type config struct {
	ListenAddress      string
	DebugAddress       string
	Country            string
	DataDir            string
	CatalogFile        string
	CatalogUrl         string
	CatalogClientId    string
	CatalogSecret      string
	CatalogTokenUrl    string
	RedisUrl           string
	RedisPassword      string
	RedisDb            int
	RabbitUrl          string
	PageSize           int
	SessionTtl         time.Duration
	MaxSessions        int
	CatalogLoadTimeout time.Duration

	// CatalogRefreshInterval of 0 disables the scheduled refresh.
	CatalogRefreshInterval time.Duration
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func loadConfig() config {
	return config{
		ListenAddress:          getEnv("LISTEN_ADDRESS", ":8080"),
		DebugAddress:           getEnv("DEBUG_ADDRESS", ":8081"),
		Country:                getEnv("COUNTRY", "ng"),
		DataDir:                getEnv("DATA_DIR", "data"),
		CatalogFile:            getEnv("CATALOG_FILE", ""),
		CatalogUrl:             getEnv("CATALOG_URL", ""),
		CatalogClientId:        getEnv("CATALOG_CLIENT_ID", ""),
		CatalogSecret:          getEnv("CATALOG_CLIENT_SECRET", ""),
		CatalogTokenUrl:        getEnv("CATALOG_TOKEN_URL", ""),
		RedisUrl:               getEnv("REDIS_URL", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDb:                getEnvInt("REDIS_DB", 0),
		RabbitUrl:              getEnv("RABBIT_URL", ""),
		PageSize:               getEnvInt("PAGE_SIZE", 12),
		SessionTtl:             getEnvDuration("SESSION_TTL", 30*time.Minute),
		MaxSessions:            getEnvInt("MAX_SESSIONS", 10000),
		CatalogLoadTimeout:     getEnvDuration("CATALOG_LOAD_TIMEOUT", 30*time.Second),
		CatalogRefreshInterval: getEnvDuration("CATALOG_REFRESH_INTERVAL", 0),
	}
}
