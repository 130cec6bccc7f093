// Package config loads quizdesk settings from defaults, an optional config
// file and QUIZDESK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/abhisek/quizdesk/internal/llm"
	"github.com/abhisek/quizdesk/internal/sheets"
)

// Storage backends.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
)

// Config is the resolved application configuration.
type Config struct {
	TaxonomyPath string
	LLM          llm.Config
	Storage      StorageConfig
	Sheets       sheets.Config
	DBPath       string // empty selects the default location
	Log          LogConfig
	Server       ServerConfig

	// File is the config file that was read, if any.
	File string
}

type StorageConfig struct {
	Backend string
	Mirror  bool
}

type LogConfig struct {
	Level string
	File  string // empty selects the default location
}

type ServerConfig struct {
	Addr       string
	SessionTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("taxonomy.path", "achievement_standards_all.json")

	v.SetDefault("llm.provider", llmDefaults.Provider)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", llmDefaults.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", llmDefaults.Anthropic.Model)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", llmDefaults.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", llmDefaults.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.timeout", llmDefaults.Timeout)
	v.SetDefault("llm.max_tokens", llmDefaults.MaxTokens)

	v.SetDefault("storage.backend", BackendSheets)
	v.SetDefault("storage.mirror", true)

	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.credentials_json", "")
	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.spreadsheet_name", "")
	v.SetDefault("sheets.worksheet", "")

	v.SetDefault("db.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", 2*time.Hour)
}

// Load reads configuration. An explicit path must exist; otherwise
// quizdesk.{yaml,toml,json} is looked up in the working directory and in
// $XDG_CONFIG_HOME/quizdesk, and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QUIZDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quizdesk")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Debug().Msg("no config file found, using defaults and environment")
	}

	cfg := &Config{
		TaxonomyPath: v.GetString("taxonomy.path"),
		LLM: llm.Config{
			Provider: v.GetString("llm.provider"),
			OpenAI: llm.OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Anthropic: llm.AnthropicConfig{
				APIKey: v.GetString("llm.anthropic.api_key"),
				Model:  v.GetString("llm.anthropic.model"),
			},
			Gemini: llm.GeminiConfig{
				APIKey: v.GetString("llm.gemini.api_key"),
				Model:  v.GetString("llm.gemini.model"),
			},
			OpenRouter: llm.OpenRouterConfig{
				APIKey:  v.GetString("llm.openrouter.api_key"),
				Model:   v.GetString("llm.openrouter.model"),
				BaseURL: v.GetString("llm.openrouter.base_url"),
			},
			Timeout:   v.GetDuration("llm.timeout"),
			MaxTokens: v.GetInt("llm.max_tokens"),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(v.GetString("storage.backend")),
			Mirror:  v.GetBool("storage.mirror"),
		},
		Sheets: sheets.Config{
			CredentialsFile: v.GetString("sheets.credentials_file"),
			CredentialsJSON: v.GetString("sheets.credentials_json"),
			SpreadsheetID:   v.GetString("sheets.spreadsheet_id"),
			SpreadsheetName: v.GetString("sheets.spreadsheet_name"),
			Worksheet:       v.GetString("sheets.worksheet"),
		},
		DBPath: v.GetString("db.path"),
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
		Server: ServerConfig{
			Addr:       v.GetString("server.addr"),
			SessionTTL: v.GetDuration("server.session_ttl"),
		},
		File: v.ConfigFileUsed(),
	}

	if !cfg.LLM.HasKey() {
		if discovered, ok := llm.DiscoverConfig(cfg.LLM); ok {
			log.Debug().Str("provider", discovered.Provider).Msg("using discovered LLM API key")
			cfg.LLM = discovered
		}
	}

	return cfg, nil
}

// Validate checks the storage settings. LLM settings are checked only when
// a provider is actually needed, so manual authoring works without a key.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSheets:
		if err := c.Sheets.Validate(); err != nil {
			return err
		}
	case BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %s or %s)",
			c.Storage.Backend, BackendSheets, BackendSQLite)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive, got %s", c.Server.SessionTTL)
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/quizdesk, falling back to ~/.config/quizdesk.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quizdesk"), nil
}
