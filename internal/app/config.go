package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/keyflush/internal/adapters/out/jolokia"
	"github.com/bnema/keyflush/internal/adapters/out/telemetry"
	"github.com/bnema/keyflush/internal/domain"
)

// Config holds the application configuration.
type Config struct {
	Server struct {
		DataDir string `mapstructure:"data_dir"`
	} `mapstructure:"server"`

	Management struct {
		URL        string        `mapstructure:"url"`
		Username   string        `mapstructure:"username"`
		Password   string        `mapstructure:"password"`
		Timeout    time.Duration `mapstructure:"timeout"`
		RetryCount int           `mapstructure:"retry_count"`
	} `mapstructure:"management"`

	Flush struct {
		Keyspaces      string `mapstructure:"keyspaces"`       // comma separated override, empty means all
		SchedulerType  string `mapstructure:"scheduler_type"`  // "hour" or "cron"
		Interval       string `mapstructure:"interval"`        // e.g. "hour=15", "daily=3"
		CronExpression string `mapstructure:"cron_expression"` // used when scheduler_type is "cron"
	} `mapstructure:"flush"`

	History struct {
		Enabled   bool   `mapstructure:"enabled"`
		Path      string `mapstructure:"path"`      // defaults to {data_dir}/history.db
		Retention int    `mapstructure:"retention"` // runs kept, 0 keeps all
	} `mapstructure:"history"`

	Metrics telemetry.Config `mapstructure:"metrics"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`
}

// initConfig loads configuration from file and environment.
func initConfig(configPath string) (*viper.Viper, Config, error) {
	v := viper.New()
	if err := loadConfig(v, configPath); err != nil {
		return nil, Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return v, cfg, nil
}

// loadConfig loads configuration from file and sets defaults.
func loadConfig(v *viper.Viper, configPath string) error {
	v.SetDefault("server.data_dir", DefaultDataDir())
	v.SetDefault("management.url", "http://127.0.0.1:8778/jolokia")
	v.SetDefault("management.username", "")
	v.SetDefault("management.password", "")
	v.SetDefault("management.timeout", jolokia.DefaultTimeout)
	v.SetDefault("management.retry_count", jolokia.DefaultRetryCount)
	v.SetDefault("flush.keyspaces", "")
	v.SetDefault("flush.scheduler_type", string(domain.SchedulerHour))
	v.SetDefault("flush.interval", "") // empty disables the recurring flush
	v.SetDefault("flush.cron_expression", "")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "") // defaults to {data_dir}/history.db when empty
	v.SetDefault("history.retention", 500)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", "127.0.0.1:9464")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("KEYFLUSH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// validateConfig normalizes cfg in place and reports every invalid value.
func validateConfig(cfg *Config) error {
	var errs []error

	cfg.Flush.SchedulerType = strings.ToLower(strings.TrimSpace(cfg.Flush.SchedulerType))
	cfg.Flush.Interval = strings.TrimSpace(cfg.Flush.Interval)
	cfg.Flush.CronExpression = strings.TrimSpace(cfg.Flush.CronExpression)

	if cfg.Server.DataDir == "" {
		cfg.Server.DataDir = DefaultDataDir()
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(cfg.Server.DataDir, "history.db")
	}
	if cfg.Logging.File.Enabled && cfg.Logging.File.Path == "" {
		cfg.Logging.File.Path = filepath.Join(cfg.Server.DataDir, "logs", "keyflush.log")
	}

	u, err := url.Parse(cfg.Management.URL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("%w: management.url: %v", domain.ErrInvalidArgument, err))
	case !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "":
		errs = append(errs, fmt.Errorf("%w: management.url must be an absolute http(s) URL, received: %q",
			domain.ErrInvalidArgument, cfg.Management.URL))
	}
	if cfg.Management.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: management.timeout must be positive, received: %s",
			domain.ErrInvalidArgument, cfg.Management.Timeout))
	}
	if cfg.Management.RetryCount < 0 {
		errs = append(errs, fmt.Errorf("%w: management.retry_count must be >= 0, received: %d",
			domain.ErrInvalidArgument, cfg.Management.RetryCount))
	}
	if cfg.History.Retention < 0 {
		errs = append(errs, fmt.Errorf("%w: history.retention must be >= 0, received: %d",
			domain.ErrInvalidArgument, cfg.History.Retention))
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		errs = append(errs, fmt.Errorf("%w: metrics.listen is required when metrics are enabled", domain.ErrInvalidArgument))
	}

	return errors.Join(errs...)
}
