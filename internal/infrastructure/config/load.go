package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config file, applies environment overrides and parses
// duration strings. A missing file is not an error: defaults still apply, so
// the service can start from environment alone.
func Load(path string) (*Config, error) {
	var cfg Config
	applyDefaults(&cfg)

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := parseDurations(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeoutStr = "10s"
	cfg.Server.WriteTimeoutStr = "30s"
	cfg.Server.ShutdownTimeoutStr = "15s"

	cfg.PostgreSQL.Host = "localhost"
	cfg.PostgreSQL.Port = 5432
	cfg.PostgreSQL.User = "pricewatch"
	cfg.PostgreSQL.Database = "pricewatch"
	cfg.PostgreSQL.SSLMode = "disable"

	cfg.Redis.Host = "localhost"
	cfg.Redis.Port = 6379
	cfg.Redis.TTLStr = "10m"

	cfg.Source.Mode = "simulated"
	cfg.Source.FetchTimeoutStr = "10s"

	cfg.SMTP.Port = 587

	cfg.Refresh.IntervalStr = "1h"
	cfg.Refresh.BatchBudgetStr = "5m"
	cfg.Refresh.Workers = 8
	cfg.Refresh.ThresholdDropPercent = 10

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.PostgreSQL.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.PostgreSQL.Port = port
		}
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.PostgreSQL.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.PostgreSQL.Password = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.PostgreSQL.Database = v
	}

	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Redis.Port = port
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := os.Getenv("SOURCE_MODE"); v != "" {
		cfg.Source.Mode = v
	}
	if v := os.Getenv("SOURCE_ENDPOINT"); v != "" {
		cfg.Source.Endpoint = v
	}

	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
		cfg.SMTP.Enabled = true
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		cfg.Refresh.IntervalStr = v
	}
	if v := os.Getenv("REFRESH_BATCH_BUDGET"); v != "" {
		cfg.Refresh.BatchBudgetStr = v
	}
	if v := os.Getenv("REFRESH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Refresh.Workers = n
		}
	}
	if v := os.Getenv("THRESHOLD_DROP_PERCENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Refresh.ThresholdDropPercent = f
		}
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func parseDurations(cfg *Config) error {
	var err error
	if cfg.Server.ReadTimeout, err = time.ParseDuration(cfg.Server.ReadTimeoutStr); err != nil {
		return fmt.Errorf("invalid server.read_timeout: %w", err)
	}
	if cfg.Server.WriteTimeout, err = time.ParseDuration(cfg.Server.WriteTimeoutStr); err != nil {
		return fmt.Errorf("invalid server.write_timeout: %w", err)
	}
	if cfg.Server.ShutdownTimeout, err = time.ParseDuration(cfg.Server.ShutdownTimeoutStr); err != nil {
		return fmt.Errorf("invalid server.shutdown_timeout: %w", err)
	}
	if cfg.Redis.TTL, err = time.ParseDuration(cfg.Redis.TTLStr); err != nil {
		return fmt.Errorf("invalid redis.ttl: %w", err)
	}
	if cfg.Source.FetchTimeout, err = time.ParseDuration(cfg.Source.FetchTimeoutStr); err != nil {
		return fmt.Errorf("invalid source.fetch_timeout: %w", err)
	}
	if cfg.Refresh.Interval, err = time.ParseDuration(cfg.Refresh.IntervalStr); err != nil {
		return fmt.Errorf("invalid refresh.interval: %w", err)
	}
	if cfg.Refresh.BatchBudget, err = time.ParseDuration(cfg.Refresh.BatchBudgetStr); err != nil {
		return fmt.Errorf("invalid refresh.batch_budget: %w", err)
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host, c.PostgreSQL.Port, c.PostgreSQL.User,
		c.PostgreSQL.Password, c.PostgreSQL.Database, c.PostgreSQL.SSLMode,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTP.Host, c.SMTP.Port)
}
