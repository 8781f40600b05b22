package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"brandsmith/internal/utils"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	LLM    LLMConfig    `yaml:"llm"`
	Images ImagesConfig `yaml:"images"`
	MCP    MCPConfig    `yaml:"mcp"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// BaseURL prefixes media links handed to clients. Empty means relative.
	BaseURL string `yaml:"base_url"`
}

type DBConfig struct {
	// Path of the sqlite file. Empty selects the per-user default.
	Path     string `yaml:"path"`
	LogLevel string `yaml:"log_level"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AuthConfig struct {
	Enabled     bool   `yaml:"enabled"`
	DefaultUser string `yaml:"default_user"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

type ImagesConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	Dir      string `yaml:"dir"`
	Format   string `yaml:"format"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Addr is the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel maps the configured level name, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		DB: DBConfig{
			LogLevel: "warn",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			DefaultUser: "local",
		},
		LLM: LLMConfig{
			Provider:  "openai",
			MaxTokens: 4096,
		},
		Images: ImagesConfig{
			Provider: "none",
			Dir:      "media",
			Format:   "webp",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
	}
}

// Load reads configuration from .env, an optional YAML file and
// BRANDSMITH_* environment variables, in that order of precedence.
func Load() (Config, error) {
	// a missing .env is fine
	_ = utils.LoadEnv()

	cfg := Default()
	if path := os.Getenv("BRANDSMITH_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString("BRANDSMITH_SERVER_HOST", &cfg.Server.Host)
	if err := setInt("BRANDSMITH_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	setString("BRANDSMITH_SERVER_BASE_URL", &cfg.Server.BaseURL)
	setString("BRANDSMITH_DB_PATH", &cfg.DB.Path)
	setString("BRANDSMITH_DB_LOG_LEVEL", &cfg.DB.LogLevel)
	setString("BRANDSMITH_LOG_LEVEL", &cfg.Log.Level)
	if err := setBool("BRANDSMITH_AUTH_ENABLED", &cfg.Auth.Enabled); err != nil {
		return err
	}
	setString("BRANDSMITH_AUTH_DEFAULT_USER", &cfg.Auth.DefaultUser)
	setString("BRANDSMITH_LLM_PROVIDER", &cfg.LLM.Provider)
	setString("BRANDSMITH_LLM_MODEL", &cfg.LLM.Model)
	setString("BRANDSMITH_LLM_API_KEY", &cfg.LLM.APIKey)
	setString("BRANDSMITH_LLM_BASE_URL", &cfg.LLM.BaseURL)
	if err := setInt("BRANDSMITH_LLM_MAX_TOKENS", &cfg.LLM.MaxTokens); err != nil {
		return err
	}
	setString("BRANDSMITH_IMAGES_PROVIDER", &cfg.Images.Provider)
	setString("BRANDSMITH_IMAGES_MODEL", &cfg.Images.Model)
	setString("BRANDSMITH_IMAGES_API_KEY", &cfg.Images.APIKey)
	setString("BRANDSMITH_IMAGES_DIR", &cfg.Images.Dir)
	setString("BRANDSMITH_IMAGES_FORMAT", &cfg.Images.Format)
	return setBool("BRANDSMITH_MCP_ENABLED", &cfg.MCP.Enabled)
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = b
	return nil
}

// Validate rejects provider and format names the app cannot serve.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "openai", "claude", "gemini":
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}
	switch c.Images.Provider {
	case "gemini", "openrouter", "none", "":
	default:
		return fmt.Errorf("unsupported images provider %q", c.Images.Provider)
	}
	switch strings.ToLower(c.Images.Format) {
	case "", "png", "jpg", "jpeg", "webp":
	default:
		return fmt.Errorf("unsupported image format %q", c.Images.Format)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
