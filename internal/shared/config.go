package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed config.example.toml
var exampleConf []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config represents the application configuration loaded from a TOML or YAML file.
type Config struct {
	Catalog CatalogConfig   `toml:"catalog" yaml:"catalog"`
	Books   []models.Book   `toml:"books" yaml:"books" validate:"dive"`
	Members []models.Member `toml:"members" yaml:"members" validate:"dive"`
	Script  []StepConfig    `toml:"script" yaml:"script" validate:"dive"`
}

// CatalogConfig contains catalog-wide settings.
type CatalogConfig struct {
	Name     string `toml:"name" yaml:"name" validate:"required"`
	LogLevel string `toml:"log_level" yaml:"log_level" validate:"omitempty,oneof=debug info warn error fatal"`
	Format   string `toml:"format" yaml:"format" validate:"omitempty,oneof=text markdown csv json"`
}

// StepConfig describes one scripted catalog operation.
//
// Only the fields relevant to Op are read; add_book and add_member use Title/Author/Year and Name/Email.
type StepConfig struct {
	Op      string `toml:"op" yaml:"op" validate:"required,oneof=add_book remove_book add_member remove_member checkout return search stats"`
	Book    int    `toml:"book" yaml:"book"`
	Member  int    `toml:"member" yaml:"member"`
	Keyword string `toml:"keyword" yaml:"keyword"`
	Title   string `toml:"title" yaml:"title"`
	Author  string `toml:"author" yaml:"author"`
	Year    int    `toml:"year" yaml:"year"`
	Name    string `toml:"name" yaml:"name"`
	Email   string `toml:"email" yaml:"email" validate:"omitempty,email"`
}

// Validate checks struct tags across the catalog settings, seed records and script steps.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// LoadConfig reads and parses a configuration file from the specified path.
//
// Files ending in .yaml or .yml are decoded as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return config, nil
}

// ParseConfig decodes raw config bytes. ext selects the format (".toml", ".yaml" or ".yml").
func ParseConfig(data []byte, ext string) (*Config, error) {
	var config Config

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".toml", "":
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadOrDefault loads the config at path when it exists and falls back to [DefaultConfig] otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return LoadConfig(path)
}
