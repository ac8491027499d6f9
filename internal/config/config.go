package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	llmref "github.com/kingfs/go-llm-reference"
)

const (
	defaultPort        = "8080"
	defaultEnvironment = "development"
	defaultLogLevel    = "info"
	defaultOrigins     = "*"
)

// DefaultEnvFiles are loaded in order; a variable set by an earlier file wins.
var DefaultEnvFiles = []string{".env.local", ".env.development", ".env"}

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string `yaml:"port" validate:"omitempty,numeric"`
	Environment    string `yaml:"environment" validate:"omitempty,oneof=development production test"`
	LogLevel       string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	AllowedOrigins string `yaml:"allowed_origins"`
}

// CatalogConfig points at the model dataset. An empty path selects the bundled one.
type CatalogConfig struct {
	Path string `yaml:"path" validate:"omitempty,endswith=.json|endswith=.yaml|endswith=.yml"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadFromFile loads configuration from a YAML file with environment variable substitution
func LoadFromFile(configPath string) (*Config, error) {
	cleanPath := filepath.Clean(configPath)

	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("invalid config file: only .yaml and .yml files are allowed")
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, substituting ${VAR} and ${VAR:-default} first.
func Parse(data []byte) (*Config, error) {
	content := substituteEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadOrDefault behaves like LoadFromFile but falls back to Default when the file
// does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	cfg, err := LoadFromFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		fiberlog.Warnf("Config file %s not found, using defaults", configPath)
		return Default(), nil
	}
	return cfg, err
}

// LoadEnvFiles loads environment variables from .env files in order of precedence.
// Missing files are skipped.
func LoadEnvFiles(envFiles []string) {
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fiberlog.Warnf("Failed to load %s: %v", envFile, err)
			continue
		}
		fiberlog.Debugf("Loaded environment variables from %s", envFile)
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}
	if c.Server.Environment == "" {
		c.Server.Environment = defaultEnvironment
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaultLogLevel
	}
	if c.Server.AllowedOrigins == "" {
		c.Server.AllowedOrigins = defaultOrigins
	}
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// GetNormalizedLogLevel returns the lower-cased log level.
func (c *Config) GetNormalizedLogLevel() string {
	return strings.ToLower(strings.TrimSpace(c.Server.LogLevel))
}

// OpenCatalog loads the configured dataset, or the bundled one when no path is set.
func (c *Config) OpenCatalog() (*llmref.Catalog, error) {
	if c.Catalog.Path == "" {
		return llmref.Default(), nil
	}
	return llmref.Load(c.Catalog.Path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::(-[^}]*))?\}`)

// substituteEnvVars replaces ${VAR_NAME} and ${VAR_NAME:-default} patterns with environment variables
func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultValue := ""
		if len(submatches) > 2 && submatches[2] != "" {
			defaultValue = strings.TrimPrefix(submatches[2], "-")
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// SetupLogLevel maps a config log level onto fiberlog. Unknown levels fall back to info.
func SetupLogLevel(level string) {
	switch level {
	case "trace":
		fiberlog.SetLevel(fiberlog.LevelTrace)
	case "debug":
		fiberlog.SetLevel(fiberlog.LevelDebug)
	case "info":
		fiberlog.SetLevel(fiberlog.LevelInfo)
	case "warn", "warning":
		fiberlog.SetLevel(fiberlog.LevelWarn)
	case "error":
		fiberlog.SetLevel(fiberlog.LevelError)
	case "fatal":
		fiberlog.SetLevel(fiberlog.LevelFatal)
	case "panic":
		fiberlog.SetLevel(fiberlog.LevelPanic)
	default:
		fiberlog.SetLevel(fiberlog.LevelInfo)
		fiberlog.Warnf("Unknown log level '%s', defaulting to 'info'", level)
	}
}
