package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Profile backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port           string
	LogLevel       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CORSOrigin     string
	DataDir        string
	DefaultProfile string
	ProfileBackend string
	DBConn         string
	OpenAIURL      string
	OpenAIModel    string
	OpenAITimeout  time.Duration
	OpenAIKeyFile  string
}

// fileConfig mirrors the optional TOML config file
type fileConfig struct {
	Server struct {
		Port         string `toml:"port"`
		LogLevel     string `toml:"log_level"`
		ReadTimeout  string `toml:"read_timeout"`
		WriteTimeout string `toml:"write_timeout"`
		CORSOrigin   string `toml:"cors_origin"`
	} `toml:"server"`
	Profiles struct {
		Backend        string `toml:"backend"`
		DataDir        string `toml:"data_dir"`
		DefaultProfile string `toml:"default_profile"`
		DBConn         string `toml:"db_conn"`
	} `toml:"profiles"`
	LLM struct {
		BaseURL string `toml:"base_url"`
		Model   string `toml:"model"`
		Timeout string `toml:"timeout"`
		KeyFile string `toml:"key_file"`
	} `toml:"llm"`
}

// NewConfig loads configuration from defaults, an optional TOML file named by
// CONFIG_FILE, and environment variables, in increasing precedence
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           "5001",
		LogLevel:       "info",
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		CORSOrigin:     "*",
		DataDir:        "data/profiles",
		DefaultProfile: "james_thompson",
		ProfileBackend: BackendFile,
		OpenAIURL:      "https://api.openai.com/v1",
		OpenAIModel:    "gpt-4o-mini",
		OpenAITimeout:  20 * time.Second,
		OpenAIKeyFile:  "secrets/openai_key.txt",
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.ReadTimeout = getEnvDuration("READ_TIMEOUT", cfg.ReadTimeout)
	cfg.WriteTimeout = getEnvDuration("WRITE_TIMEOUT", cfg.WriteTimeout)
	cfg.CORSOrigin = getEnv("CORS_ORIGIN", cfg.CORSOrigin)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.DefaultProfile = getEnv("DEFAULT_PROFILE", cfg.DefaultProfile)
	cfg.ProfileBackend = getEnv("PROFILE_BACKEND", cfg.ProfileBackend)
	cfg.DBConn = getEnv("DB_CONN", cfg.DBConn)
	cfg.OpenAIURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIURL)
	cfg.OpenAIModel = getEnv("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAITimeout = getEnvDuration("OPENAI_TIMEOUT", cfg.OpenAITimeout)
	cfg.OpenAIKeyFile = getEnv("OPENAI_KEY_FILE", cfg.OpenAIKeyFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	setString(&c.Port, fc.Server.Port)
	setString(&c.LogLevel, fc.Server.LogLevel)
	setString(&c.CORSOrigin, fc.Server.CORSOrigin)
	setString(&c.ProfileBackend, fc.Profiles.Backend)
	setString(&c.DataDir, fc.Profiles.DataDir)
	setString(&c.DefaultProfile, fc.Profiles.DefaultProfile)
	setString(&c.DBConn, fc.Profiles.DBConn)
	setString(&c.OpenAIURL, fc.LLM.BaseURL)
	setString(&c.OpenAIModel, fc.LLM.Model)
	setString(&c.OpenAIKeyFile, fc.LLM.KeyFile)

	durations := []struct {
		raw string
		dst *time.Duration
	}{
		{fc.Server.ReadTimeout, &c.ReadTimeout},
		{fc.Server.WriteTimeout, &c.WriteTimeout},
		{fc.LLM.Timeout, &c.OpenAITimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q in %s: %w", d.raw, path, err)
		}
		*d.dst = v
	}
	return nil
}

// Validate checks the configuration and reports every problem found
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %q", c.Port))
	}
	switch c.ProfileBackend {
	case BackendFile:
		if c.DataDir == "" {
			problems = append(problems, "DATA_DIR is required for the file backend")
		}
	case BackendPostgres:
		if c.DBConn == "" {
			problems = append(problems, "DB_CONN is required for the postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown profile backend %q", c.ProfileBackend))
	}
	if c.DefaultProfile == "" {
		problems = append(problems, "DEFAULT_PROFILE is required")
	}
	if u, err := url.Parse(c.OpenAIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid OPENAI_BASE_URL %q", c.OpenAIURL))
	}
	if c.OpenAITimeout <= 0 {
		problems = append(problems, "OPENAI_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
