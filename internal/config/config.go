package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// DatabaseURL selects the postgres backend when set and no
	// Firestore project is configured.
	DatabaseURL string

	Firestore FirestoreConfig
	LLM       LLMConfig

	SummaryCacheSize int
}

type FirestoreConfig struct {
	ProjectID  string
	Collection string
}

type LLMConfig struct {
	Provider string // "openai" (default) or "gemini"
	Model    string
	APIKey   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:             *port,
		Env:              env,
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Firestore:        loadFirestoreConfig(),
		LLM:              loadLLMConfig(),
		SummaryCacheSize: loadIntEnv("SUMMARY_CACHE_SIZE", 0),
	}, nil
}

func loadFirestoreConfig() FirestoreConfig {
	return FirestoreConfig{
		ProjectID: firstNonEmpty(
			strings.TrimSpace(os.Getenv("FIRESTORE_PROJECT_ID")),
			strings.TrimSpace(os.Getenv("GOOGLE_CLOUD_PROJECT")),
		),
		Collection: firstNonEmpty(strings.TrimSpace(os.Getenv("INCIDENTS_COLLECTION")), "incidents"),
	}
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER")))
	if provider == "" {
		provider = "openai"
	}
	apiKeyVar := "OPENAI_API_KEY"
	if provider == "gemini" {
		apiKeyVar = "GEMINI_API_KEY"
	}
	return LLMConfig{
		Provider: provider,
		Model:    strings.TrimSpace(os.Getenv("LLM_MODEL")),
		APIKey:   strings.TrimSpace(os.Getenv(apiKeyVar)),
	}
}

func loadIntEnv(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
