// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	//AI collaborators
	GroqAPIKey string `yaml:"groq_api_key" env:"GROQ_API_KEY"`
	ChatModel  string `yaml:"chat_model"`
	EmbedModel string `yaml:"embed_model"`

	//Target site
	BaseOrigin string `yaml:"base_origin"`
	LoginURL   string `yaml:"login_url"`
	SearchURL  string `yaml:"search_url"`

	//Matching & discovery knobs
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	ScrollRounds        int     `yaml:"scroll_rounds"`
	ScrollPauseMs       int     `yaml:"scroll_pause_ms"`
	CardPauseMs         int     `yaml:"card_pause_ms"`
	CandidateMultiplier int     `yaml:"candidate_multiplier"`
	SummarySentences    int     `yaml:"summary_sentences"`

	//Paths
	CSVPath        string `yaml:"csv_path"`
	CachePath      string `yaml:"cache_path"`
	ScreenshotsDir string `yaml:"screenshots_dir"`

	//Skip listings already processed in previous runs
	SkipSeen bool `yaml:"skip_seen"`

	//Optional Telegram notifications for high matches
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Printf("Warning: Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			log.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.GroqAPIKey = key
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			log.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	cfg.ApplyDefaults()

	//Validate required fields
	if cfg.GroqAPIKey == "" {
		log.Fatal("GROQ_API_KEY is required (cover letters and embeddings)")
	}

	return cfg
}

// ApplyDefaults fills zero-valued knobs with the stock pipeline constants.
func (cfg *Config) ApplyDefaults() {
	if cfg.ChatModel == "" {
		cfg.ChatModel = "llama-3.3-70b-versatile"
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "nomic-embed-text-v1.5"
	}
	if cfg.BaseOrigin == "" {
		cfg.BaseOrigin = "https://www.ncs.gov.in"
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = cfg.BaseOrigin + "/_layouts/15/ncsp/user-management/login.aspx"
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = cfg.BaseOrigin + "/Pages/Search.aspx"
	}
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = 0.5
	}
	if cfg.ScrollRounds == 0 {
		cfg.ScrollRounds = 20
	}
	if cfg.ScrollPauseMs == 0 {
		cfg.ScrollPauseMs = 800
	}
	if cfg.CardPauseMs == 0 {
		cfg.CardPauseMs = 600
	}
	if cfg.CandidateMultiplier == 0 {
		cfg.CandidateMultiplier = 2
	}
	if cfg.SummarySentences == 0 {
		cfg.SummarySentences = 8
	}
	if cfg.CSVPath == "" {
		cfg.CSVPath = "ncs_job_results.csv"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = ".cache"
	}
	if cfg.ScreenshotsDir == "" {
		cfg.ScreenshotsDir = "logs/screenshots"
	}
}
