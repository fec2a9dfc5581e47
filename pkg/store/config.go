package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// Settings is the full configuration of the trip tool.
type Settings struct {
	Path          string        `json:"path"`
	AutosaveDelay time.Duration `json:"autosaveDelay"`
	WeatherDelay  time.Duration `json:"weatherDelay"`
	SearchDelay   time.Duration `json:"searchDelay"`
	Seed          int64         `json:"seed"`
	ConfigFile    string        `json:"configFile,omitempty"`
}

func (s *Settings) BasePath() string {
	return s.Path
}

// LoadConfig reads .env, then .trip.yaml from $TRIP_CONFIG_PATH or the
// working directory, then TRIP_* environment variables.
func LoadConfig() (*Settings, error) {
	override := os.Getenv("TRIP_CONFIG_PATH")
	if err := loadDotEnv(override); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("path", "~/.trip.db")
	v.SetDefault("autosave_delay", "250ms")
	v.SetDefault("weather_delay", "0s")
	v.SetDefault("search_delay", "0s")
	v.SetDefault("seed", 0)
	v.SetConfigName(".trip") // .yaml is implicit
	v.SetEnvPrefix("TRIP")
	v.AutomaticEnv()

	if override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &Settings{
		Path:          path,
		AutosaveDelay: v.GetDuration("autosave_delay"),
		WeatherDelay:  v.GetDuration("weather_delay"),
		SearchDelay:   v.GetDuration("search_delay"),
		Seed:          v.GetInt64("seed"),
		ConfigFile:    v.ConfigFileUsed(),
	}, nil
}

// loadDotEnv applies .env files without overriding variables already set.
func loadDotEnv(dir string) error {
	files := []string{".env"}
	if dir != "" {
		files = append([]string{filepath.Join(dir, ".env")}, files...)
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("store: load %s: %w", f, err)
		}
	}
	return nil
}
