package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	Prompt     string `mapstructure:"prompt" yaml:"prompt"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	ChartDir   string `mapstructure:"chart_dir" yaml:"chart_dir"`
	BarWidth   int    `mapstructure:"bar_width" yaml:"bar_width"`
	TableTopN  int    `mapstructure:"table_top_n" yaml:"table_top_n"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	LogMaxSize int    `mapstructure:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogBackups int    `mapstructure:"log_backups" yaml:"log_backups"`
	LogMaxAge  int    `mapstructure:"log_max_age_days" yaml:"log_max_age_days"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.surveyscope/config.yaml, creating the directory
// if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".surveyscope")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SURVEYSCOPE")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("prompt", "survey> ")
	v.SetDefault("sheet_name", "")
	v.SetDefault("chart_dir", "")
	v.SetDefault("bar_width", 50)
	v.SetDefault("table_top_n", 10)
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 1)
	v.SetDefault("log_backups", 2)
	v.SetDefault("log_max_age_days", 30)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".surveyscope")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve chart_dir default: ~/.surveyscope/charts
	if c.ChartDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ChartDir = filepath.Join(home, ".surveyscope", "charts")
	}
	// Resolve log_file default: ~/.surveyscope/surveyscope.log
	if c.LogFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.LogFile = filepath.Join(home, ".surveyscope", "surveyscope.log")
	}
	return &c, nil
}
