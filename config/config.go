package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Upstream financial data service
	FinDataBaseURL   string `json:"findata_base_url"`
	FinancialDataKey string `json:"financial_data_key"`

	// Optional override for the bundled symbol directory dataset
	SymbolsPath string `json:"symbols_path"`

	// LLM used for assisted symbol extraction
	LLMProvider string `json:"llm_provider"`
	LLMModel    string `json:"llm_model"`
	LLMBaseURL  string `json:"llm_base_url"`
	LLMAPIKey   string `json:"llm_api_key"`

	// Fetch behavior
	HTTPTimeoutSeconds int  `json:"http_timeout_seconds"`
	MaxDayFetchers     int  `json:"max_day_fetchers"`
	Debug              bool `json:"debug"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		FinDataBaseURL: "https://financialdata.net/api/v1",

		LLMProvider: "openai",
		LLMModel:    "openai/gpt-4o-mini",
		LLMBaseURL:  "https://openrouter.ai/api/v1",

		HTTPTimeoutSeconds: 30,
		MaxDayFetchers:     4,
		Debug:              false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("FINDATA_BASE_URL"); val != "" {
		c.FinDataBaseURL = val
	}
	if val := os.Getenv("FINANCIAL_DATA_KEY"); val != "" {
		c.FinancialDataKey = val
	}
	if val := os.Getenv("SYMBOLS_PATH"); val != "" {
		c.SymbolsPath = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("LLM_MODEL"); val != "" {
		c.LLMModel = val
	}
	if val := os.Getenv("LLM_BASE_URL"); val != "" {
		c.LLMBaseURL = val
	}
	if val := os.Getenv("OPENROUTER_API_KEY"); val != "" {
		c.LLMAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" && c.LLMProvider == "deepseek" {
		c.LLMAPIKey = val
	}

	if val := os.Getenv("HTTP_TIMEOUT_SECONDS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.HTTPTimeoutSeconds = v
		}
	}
	if val := os.Getenv("MAX_DAY_FETCHERS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil && v > 0 {
			c.MaxDayFetchers = v
		}
	}
	if val := os.Getenv("FINSERIES_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}
