package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config interface {
	BasePath() string
}

// Settings is the resolved `.journey` configuration.
type Settings struct {
	Path           string        `json:"path"`
	Debounce       time.Duration `json:"debounce"`
	Sort           string        `json:"sort"`
	Locale         string        `json:"locale"`
	LogLevel       string        `json:"logLevel"`
	LogDevelopment bool          `json:"logDevelopment"`
	LogFile        string        `json:"logFile"`
}

func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads `.journey.yaml` from JOURNEY_CONFIG_PATH or the working
// directory, with JOURNEY_* environment overrides.
func LoadConfig() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.journey.db")
	v.SetDefault("debounce", "500ms")
	v.SetDefault("sort", "newest")
	v.SetDefault("locale", "en")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("log.file", "")
	v.SetConfigName(".journey") // .yaml is implicit
	v.SetEnvPrefix("JOURNEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("JOURNEY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log file: %w", err)
	}

	return &Settings{
		Path:           path,
		Debounce:       v.GetDuration("debounce"),
		Sort:           v.GetString("sort"),
		Locale:         v.GetString("locale"),
		LogLevel:       v.GetString("log.level"),
		LogDevelopment: v.GetBool("log.development"),
		LogFile:        logFile,
	}, nil
}
