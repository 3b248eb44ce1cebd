package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string
	DatabaseURI   string
	WebAppURL     string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	APIAddr       string
	Debug         bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		DatabaseURI:   os.Getenv("DATABASE_URI"),
		WebAppURL:     os.Getenv("WEBAPP_URL"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		APIAddr:       getEnvOrDefault("API_ADDR", ":8000"),
		Debug:         os.Getenv("DEBUG") == "true",
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("DATABASE_URI is required")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
