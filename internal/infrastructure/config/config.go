package config

import "time"

type Config struct {
	Server struct {
		Port               int    `yaml:"port"`
		ReadTimeoutStr     string `yaml:"read_timeout"`
		WriteTimeoutStr    string `yaml:"write_timeout"`
		ShutdownTimeoutStr string `yaml:"shutdown_timeout"`
		ReadTimeout        time.Duration
		WriteTimeout       time.Duration
		ShutdownTimeout    time.Duration
	} `yaml:"server"`

	PostgreSQL struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"postgresql"`

	Redis struct {
		Host     string        `yaml:"host"`
		Port     int           `yaml:"port"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTLStr   string        `yaml:"ttl"`
		TTL      time.Duration `yaml:"-"`
	} `yaml:"redis"`

	Source struct {
		// Mode selects the snapshot source at boot: "live" hits the scrape
		// endpoint, "simulated" generates synthetic snapshots.
		Mode            string `yaml:"mode"`
		Endpoint        string `yaml:"endpoint"`
		FetchTimeoutStr string `yaml:"fetch_timeout"`
		FetchTimeout    time.Duration
	} `yaml:"source"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
		Enabled  bool   `yaml:"enabled"`
	} `yaml:"smtp"`

	Refresh struct {
		IntervalStr          string        `yaml:"interval"`
		BatchBudgetStr       string        `yaml:"batch_budget"`
		Workers              int           `yaml:"workers"`
		ThresholdDropPercent float64       `yaml:"threshold_drop_percent"`
		Interval             time.Duration `yaml:"-"`
		BatchBudget          time.Duration `yaml:"-"`
	} `yaml:"refresh"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}
