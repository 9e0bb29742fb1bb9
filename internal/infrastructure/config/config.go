package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Model  ModelConfig  `mapstructure:"model"`
	Train  TrainConfig  `mapstructure:"train"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// RateLimit uses the limiter format "<limit>-<period>", e.g. "100-S". Empty disables it.
	RateLimit string `mapstructure:"rate_limit"`
}

// ModelConfig holds the location of the trained model artifact
type ModelConfig struct {
	Path string `mapstructure:"path"`
}

// TrainConfig holds trainer parameters
type TrainConfig struct {
	Seed        int64   `mapstructure:"seed"`
	TestRatio   float64 `mapstructure:"test_ratio"`
	C           float64 `mapstructure:"c"`
	MaxIter     int     `mapstructure:"max_iter"`
	Tolerance   float64 `mapstructure:"tolerance"`
	Probability bool    `mapstructure:"probability"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Trainer flag names and the config keys they override
var trainerFlags = map[string]string{
	"model-path":  "model.path",
	"seed":        "train.seed",
	"test-ratio":  "train.test_ratio",
	"c":           "train.c",
	"probability": "train.probability",
}

// Load reads configuration from defaults, an optional config file and IRIS_* environment variables
func Load() (*Config, error) {
	return load(nil)
}

// LoadWithFlags behaves like Load and additionally applies the trainer command line flags
// that were explicitly set on fs.
func LoadWithFlags(fs *pflag.FlagSet) (*Config, error) {
	return load(fs)
}

// TrainerFlags returns a flag set understood by LoadWithFlags
func TrainerFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("model-path", "", "output path of the trained model artifact")
	fs.Int64("seed", 0, "random seed for the train/test split and solver")
	fs.Float64("test-ratio", 0, "held-out fraction of each class")
	fs.Float64("c", 0, "SVM regularization parameter")
	fs.Bool("probability", true, "fit probability calibration")
	return fs
}

func load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("IRIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for flagName, key := range trainerFlags {
			f := fs.Lookup(flagName)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.rate_limit", "")

	v.SetDefault("model.path", "model/iris_model.gob")

	v.SetDefault("train.seed", 42)
	v.SetDefault("train.test_ratio", 0.2)
	v.SetDefault("train.c", 1.0)
	v.SetDefault("train.max_iter", 1000)
	v.SetDefault("train.tolerance", 0.001)
	v.SetDefault("train.probability", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Model.Path == "" {
		return errors.New("model path must not be empty")
	}
	if c.Train.TestRatio <= 0 || c.Train.TestRatio >= 1 {
		return fmt.Errorf("test ratio must be in (0, 1), got %v", c.Train.TestRatio)
	}
	if c.Train.C <= 0 {
		return fmt.Errorf("regularization parameter C must be positive, got %v", c.Train.C)
	}
	return nil
}
