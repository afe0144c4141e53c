package store

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved configuration of the leadsheet tools.
type Config interface {
	BasePath() string
	LogLevel() string
	LogFormat() string
	UndoLimit() int
}

// LoadConfig reads .leadsheet.yaml from $LEADSHEET_CONFIG_PATH or the
// working directory. Every key can be overridden by a LEADSHEET_ variable,
// e.g. LEADSHEET_PATH or LEADSHEET_LOG_LEVEL.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.leadsheet.db")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("undo.limit", 100)
	v.SetConfigName(".leadsheet") // .yaml is implicit
	v.SetEnvPrefix("LEADSHEET")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if override := os.Getenv("LEADSHEET_CONFIG_PATH"); override != "" {
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
	return &fileConfig{
		Path:   path,
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Undo:   v.GetInt("undo.limit"),
	}, nil
}

var envKeyReplacer = strings.NewReplacer(".", "_")

type fileConfig struct {
	Path   string `json:"path"`
	Level  string `json:"logLevel"`
	Format string `json:"logFormat"`
	Undo   int    `json:"undoLimit"`
}

func (f *fileConfig) BasePath() string  { return f.Path }
func (f *fileConfig) LogLevel() string  { return f.Level }
func (f *fileConfig) LogFormat() string { return f.Format }
func (f *fileConfig) UndoLimit() int    { return f.Undo }

// StaticConfig is a Config with fixed values, for tests and embedding.
type StaticConfig struct {
	Path   string
	Level  string
	Format string
	Undo   int
}

func (s StaticConfig) BasePath() string  { return s.Path }
func (s StaticConfig) LogLevel() string  { return s.Level }
func (s StaticConfig) LogFormat() string { return s.Format }
func (s StaticConfig) UndoLimit() int    { return s.Undo }
