package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		URL string
	}
	Redis struct {
		URL string
	}
	Research struct {
		SourceDelayMs   int
		SessionMaxAgeHr int
		ProgressStore   string // "memory" or "redis"
	}
	Exa struct {
		APIKey  string
		BaseURL string
	}
	Gemini struct {
		APIKey  string
		BaseURL string
		Model   string
	}
	Vapi struct {
		APIKey        string
		BaseURL       string
		AssistantID   string
		PhoneNumberID string
	}
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	var config Config

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.url", "")
	viper.SetDefault("redis.url", "redis://localhost:6379")
	viper.SetDefault("research.source_delay_ms", 1000)
	viper.SetDefault("research.session_max_age_hr", 24)
	viper.SetDefault("research.progress_store", "memory")
	viper.SetDefault("exa.base_url", "https://api.exa.ai")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("gemini.model", "gemini-2.5-pro")
	viper.SetDefault("vapi.base_url", "https://api.vapi.ai")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config.Server.Port = viper.GetString("server.port")
	config.Database.URL = viper.GetString("database.url")
	config.Redis.URL = viper.GetString("redis.url")
	config.Research.SourceDelayMs = viper.GetInt("research.source_delay_ms")
	config.Research.SessionMaxAgeHr = viper.GetInt("research.session_max_age_hr")
	config.Research.ProgressStore = viper.GetString("research.progress_store")
	config.Exa.BaseURL = viper.GetString("exa.base_url")
	config.Gemini.BaseURL = viper.GetString("gemini.base_url")
	config.Gemini.Model = viper.GetString("gemini.model")
	config.Vapi.BaseURL = viper.GetString("vapi.base_url")

	config.Exa.APIKey = os.Getenv("EXA_API_KEY")
	config.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	config.Vapi.APIKey = os.Getenv("VAPI_API_KEY")
	config.Vapi.AssistantID = os.Getenv("VAPI_ASSISTANT_ID")
	config.Vapi.PhoneNumberID = os.Getenv("VAPI_PHONE_NUMBER_ID")

	return &config, nil
}

// ValidateResearch checks the credentials the research engine cannot run
// without. A failure here is a configuration error, not a runtime one.
func (c *Config) ValidateResearch() error {
	if c.Exa.APIKey == "" {
		return fmt.Errorf("EXA_API_KEY is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// ValidateVoice checks the credentials needed to place voice calls.
func (c *Config) ValidateVoice() error {
	if c.Vapi.APIKey == "" {
		return fmt.Errorf("VAPI_API_KEY is required")
	}
	if c.Vapi.AssistantID == "" {
		return fmt.Errorf("VAPI_ASSISTANT_ID is required")
	}
	if c.Vapi.PhoneNumberID == "" {
		return fmt.Errorf("VAPI_PHONE_NUMBER_ID is required")
	}
	return nil
}
