package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the top-level ga-extractor configuration. The yaml tags match
// the config file written by the setup command.
type Config struct {
	ServiceAccountKeyPath string `mapstructure:"service_account_key_path" yaml:"service_account_key_path"`
	Table                 int64  `mapstructure:"table" yaml:"table"`
	Metrics               string `mapstructure:"metrics" yaml:"metrics"`
	Dimensions            string `mapstructure:"dimensions" yaml:"dimensions"`
	Filters               string `mapstructure:"filters" yaml:"filters"`
	SamplingLevel         string `mapstructure:"sampling_level" yaml:"sampling_level"`
	StartDate             string `mapstructure:"start_date" yaml:"start_date"`
	EndDate               string `mapstructure:"end_date" yaml:"end_date"`

	// Migration target parameters.
	WebsiteID uint64 `mapstructure:"website_id" yaml:"website_id"`
	Hostname  string `mapstructure:"hostname" yaml:"hostname"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("metrics", DefaultMetrics)
	v.SetDefault("dimensions", DefaultDimensions)
	v.SetDefault("sampling_level", DefaultSamplingLevel)
	v.SetDefault("website_id", DefaultWebsiteID)
	v.SetDefault("hostname", DefaultHostname)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// A missing config file is not an error; setup has simply not run yet.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ServiceAccountKeyPath = expandPath(cfg.ServiceAccountKeyPath)
	return &cfg, nil
}

// Validate checks the fields every API-facing command depends on.
func (c *Config) Validate() error {
	if c.ServiceAccountKeyPath == "" {
		return fmt.Errorf("service_account_key_path is not set; run 'setup' first")
	}
	if c.Table == 0 {
		return fmt.Errorf("table (view ID) is not set; run 'setup' first")
	}
	if !slices.Contains(SamplingLevels, c.SamplingLevel) {
		return fmt.Errorf("invalid sampling_level %q (valid: %s)",
			c.SamplingLevel, strings.Join(SamplingLevels, ", "))
	}
	if _, _, err := c.DateRange(); err != nil {
		return err
	}
	return nil
}

// DateRange parses the configured start and end dates and checks their order.
func (c *Config) DateRange() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", c.StartDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	end, err := time.ParseInLocation("2006-01-02", c.EndDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date %s is after end_date %s", c.StartDate, c.EndDate)
	}
	return start, end, nil
}

// MetricList returns the configured metric expressions.
func (c *Config) MetricList() []string {
	return splitList(c.Metrics)
}

// DimensionList returns the configured dimension names.
func (c *Config) DimensionList() []string {
	return splitList(c.Dimensions)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// YAML renders the configuration as it would be written to the config file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the configuration to the given path (or the default location
// when path is empty), creating the directory if needed.
func Save(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(ConfigDir(), DefaultConfigFile)
	} else {
		path = expandPath(path)
	}

	out, err := cfg.YAML()
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// DBPath returns the full path to the run-history SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}

// ResolvePath places name under the config directory unless it is already
// absolute. Report files live next to the config by default.
func ResolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(ConfigDir(), name)
}
