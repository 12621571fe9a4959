// Package config loads the application's TOML configuration, grounded on
// the source system's app_config module. It locates a platform config
// directory (via github.com/adrg/xdg, the Go analogue of the original's
// directories::ProjectDirs), writes sensible defaults on first run, and
// parses overrides with github.com/spf13/viper and
// github.com/pelletier/go-toml/v2.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/mooss/heurisko/config/embedded"
)

// AppName is the on-disk config directory and CLI binary name.
const AppName = "heurisko"

// AppDisplayName is what the "/" HTTP route and CLI banners print.
const AppDisplayName = "heuriskó"

// AppExt is the extension used for converted transcript files, without
// the leading dot.
const AppExt = "hsk"

// Overwritable pairs a configured value with whether callers (HTTP query
// parameters, CLI flags) are allowed to override it per request.
type Overwritable[T any] struct {
	Value       T    `toml:"value"`
	Overwritable bool `toml:"overwritable"`
}

// Resolve returns override if this field allows overriding, else Value.
func (o Overwritable[T]) Resolve(override *T) T {
	if o.Overwritable && override != nil {
		return *override
	}
	return o.Value
}

// Config is the complete application configuration. Every field carries
// both a toml tag (for go-toml/v2's default-file marshal) and a matching
// mapstructure tag, since viper's Unmarshal decodes through mapstructure
// rather than the toml tags directly.
type Config struct {
	DataDir         string `toml:"data_dir" mapstructure:"data_dir"`
	StopWordsFile   string `toml:"stop_words_file" mapstructure:"stop_words_file"`
	WordEndingsFile string `toml:"word_endings_file" mapstructure:"word_endings_file"`

	PageSize        Overwritable[int]  `toml:"page_size" mapstructure:"page_size"`
	ContextSize     Overwritable[int]  `toml:"context_size" mapstructure:"context_size"`
	RemoveStopWords Overwritable[bool] `toml:"remove_stop_words" mapstructure:"remove_stop_words"`

	WordDistance                     int `toml:"word_distance" mapstructure:"word_distance"`
	WordDistanceWithStopWordsRemoved int `toml:"word_distance_with_stop_words_removed" mapstructure:"word_distance_with_stop_words_removed"`

	Port int `toml:"port" mapstructure:"port"`
}

func defaults(dataDir, stopWordsFile string) Config {
	return Config{
		DataDir:                           dataDir,
		StopWordsFile:                     stopWordsFile,
		PageSize:                          Overwritable[int]{Value: 50, Overwritable: true},
		ContextSize:                       Overwritable[int]{Value: 20, Overwritable: true},
		RemoveStopWords:                   Overwritable[bool]{Value: true, Overwritable: true},
		WordDistance:                      2,
		WordDistanceWithStopWordsRemoved:  5,
		Port:                              8000,
	}
}

// Load locates the platform config directory, creates config.toml (and
// seeds stop_words.txt / word_endings.txt from embedded defaults) if
// absent, then parses it with viper + go-toml/v2.
func Load() (*Config, error) {
	configDir := filepath.Join(xdg.ConfigHome, AppName)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, err
	}

	dataDir := filepath.Join(xdg.DataHome, AppName)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	configPath := filepath.Join(configDir, "config.toml")
	stopWordsPath := filepath.Join(configDir, "stop_words.txt")
	wordEndingsPath := filepath.Join(configDir, "word_endings.txt")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaults(dataDir, stopWordsPath)
		data, marshalErr := toml.Marshal(cfg)
		if marshalErr != nil {
			return nil, marshalErr
		}
		if writeErr := os.WriteFile(configPath, data, 0o644); writeErr != nil {
			return nil, writeErr
		}
		_ = os.WriteFile(stopWordsPath, embedded.DefaultStopWords, 0o644)
		_ = os.WriteFile(wordEndingsPath, embedded.DefaultWordEndings, 0o644)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
