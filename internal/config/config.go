package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MetricsPort string
	DatabaseURL string
	RedisURL    string
	OpenAIKey   string

	GuruBaseURL      string
	GuruAPIKey       string
	ShopifyShopURL   string
	ShopifyToken     string
	FreteBaratoURL   string
	FreteBaratoToken string

	SKUsPath       string
	SourceTimeoutS int
	CacheTTLS      int
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return &Config{
		Port:        getEnv("PORT", "8000"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),

		GuruBaseURL:      getEnv("GURU_BASE_URL", "https://digitalmanager.guru/api/v2"),
		GuruAPIKey:       os.Getenv("GURU_API_KEY"),
		ShopifyShopURL:   os.Getenv("SHOPIFY_SHOP_URL"),
		ShopifyToken:     os.Getenv("SHOPIFY_TOKEN"),
		FreteBaratoURL:   getEnv("FRETEBARATO_URL", "https://api.fretebarato.com"),
		FreteBaratoToken: os.Getenv("FRETEBARATO_TOKEN"),

		SKUsPath:       getEnv("SKUS_PATH", "skus.json"),
		SourceTimeoutS: getEnvInt("SOURCE_TIMEOUT_S", 30),
		CacheTTLS:      getEnvInt("CACHE_TTL_S", 300),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}
