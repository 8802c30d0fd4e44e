package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr          string
	GinMode          string
	ProviderBaseURL  string
	ProviderTimeout  time.Duration
	DBDSN            string
	SessionSecret    string
	SessionTTL       time.Duration
	EnrichBatchSize  int
	ActivityPageSize int
	ExportFontPath   string
}

func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	return Env{
		AppAddr:          getEnvString("APP_ADDR", ":8080"),
		GinMode:          strings.TrimSpace(os.Getenv("GIN_MODE")),
		ProviderBaseURL:  getEnvString("PROVIDER_BASE_URL", "https://riders.example.com"),
		ProviderTimeout:  time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 30)) * time.Second,
		DBDSN:            getEnvString("DB_DSN", "root:@tcp(127.0.0.1:3306)/ridereport?parseTime=true&loc=UTC&charset=utf8mb4&timeout=5s"),
		SessionSecret:    getEnvString("SESSION_TOKEN_SECRET", "change-me-before-deploy"),
		SessionTTL:       time.Duration(getEnvInt("SESSION_TOKEN_TTL_HOURS", 12)) * time.Hour,
		EnrichBatchSize:  getEnvInt("ENRICH_BATCH_SIZE", 10),
		ActivityPageSize: getEnvInt("ACTIVITY_PAGE_SIZE", 50),
		ExportFontPath:   strings.TrimSpace(os.Getenv("EXPORT_FONT_PATH")),
	}
}

func getEnvString(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	return v
}

func getEnvInt(key string, defaultValue int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid value for %s: %s, using default %d", key, v, defaultValue)
		return defaultValue
	}
	return n
}
