package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a new Manager.
// If the file doesn't exist, creates a default configuration.
func Load(path string) (*Manager, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("Config file not found, creating default configuration", "path", path)
		cfg := defaultConfig()

		if err := save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		manager := NewManager(cfg)
		if err := manager.EnsureDirectories(); err != nil {
			return nil, err
		}
		return manager, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Override with environment variables if set
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		cfg.Telegram.Token = token
	}

	manager := NewManager(&cfg)
	if err := manager.EnsureDirectories(); err != nil {
		return nil, err
	}

	return manager, nil
}

// applyDefaults fills in the fields hand-written configs commonly omit.
func applyDefaults(cfg *Config) {
	def := defaultConfig()
	if len(cfg.Validation.Extensions) == 0 {
		cfg.Validation.Extensions = def.Validation.Extensions
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = def.Report.Format
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = def.Logger.Level
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = def.Logger.Format
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Watch.DebounceSeconds <= 0 {
		cfg.Watch.DebounceSeconds = def.Watch.DebounceSeconds
	}
	if cfg.Artwork.ThumbnailSize <= 0 {
		cfg.Artwork.ThumbnailSize = def.Artwork.ThumbnailSize
	}
	if cfg.Artwork.Quality <= 0 {
		cfg.Artwork.Quality = def.Artwork.Quality
	}
	if cfg.Jobs.LogPath == "" {
		cfg.Jobs.LogPath = def.Jobs.LogPath
	}
}

// save writes a configuration to the specified file path.
func save(path string, cfg *Config) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
