package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	API struct {
		Port     string
		BasePath string
	}
	DB struct {
		DSN string
	}
	Weather struct {
		APIKey      string
		DefaultCity string
	}
	OpenAI struct {
		APIKey string
	}
	Telegram struct {
		BotToken string
		ChatID   string
	}
	Kafka struct {
		Broker string
		Topic  string
	}
	Agent struct {
		Cron        string
		HospitalIDs []string
		Autonomous  bool
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
// Only the port has a hard default; integrations left unset are disabled
// rather than treated as errors.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.API.Port = os.Getenv("PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	cfg.DB.DSN = os.Getenv("DB_DSN")

	cfg.Weather.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.Weather.DefaultCity = os.Getenv("DEFAULT_CITY")

	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")

	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Telegram.ChatID = os.Getenv("TELEGRAM_CHAT_ID")

	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")

	cfg.Agent.Cron = os.Getenv("AGENT_CRON")
	if ids := os.Getenv("HOSPITAL_IDS"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.Agent.HospitalIDs = append(cfg.Agent.HospitalIDs, id)
			}
		}
	}
	cfg.Agent.Autonomous = os.Getenv("AGENT_AUTONOMOUS") == "true"

	// Apply defaults
	if cfg.API.Port == "" {
		cfg.API.Port = ":8000"
	}
	if !strings.HasPrefix(cfg.API.Port, ":") {
		cfg.API.Port = ":" + cfg.API.Port
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api"
	}
	if cfg.Weather.DefaultCity == "" {
		cfg.Weather.DefaultCity = "Delhi"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "surgewatch.alerts"
	}
	if len(cfg.Agent.HospitalIDs) == 0 {
		cfg.Agent.HospitalIDs = []string{"H001", "H002", "H003"}
	}

	return cfg, nil
}
