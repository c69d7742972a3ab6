package main

import (
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/gurinder1988/footyfeed/pkg/db"
	"github.com/gurinder1988/footyfeed/pkg/fetch"
	"github.com/gurinder1988/footyfeed/pkg/model"
	"github.com/gurinder1988/footyfeed/pkg/server"
	"github.com/gurinder1988/footyfeed/pkg/sources"
)

const (
	backendBadger = "badger"
	backendRedis  = "redis"
)

type Config struct {
	// Server is the web server configuration
	Server server.Config `toml:"server"`
	// Log is the optional logging configuration
	Log Log `toml:"log"`
	// Database configuration
	Database db.Config `toml:"database"`
	// Cache selects where the snapshot and preference are kept
	Cache Cache `toml:"cache"`
	// Fetch configures the HTTP client and the number of parallel fetches
	Fetch fetch.Config `toml:"fetch"`
	// Refresh configures the refresh schedule
	Refresh Refresh `toml:"refresh"`
	// Sources is the general source list plus per entity lists
	Sources sources.Config `toml:"sources"`
}

type Log struct {
	// Filename to write the log to (instead of stdout)
	Filename string `toml:"filename"`
	// MaxSize is the maximum size of the log file in MB
	MaxSize int `toml:"max_size"`
	// MaxBackups is the maximum number of log file backups to keep after rotation
	MaxBackups int `toml:"max_backups"`
	// MaxAge is the maximum number of days to keep the logs for
	MaxAge int `toml:"max_age"`
	// Compress old backups
	Compress bool `toml:"compress"`
}

type Cache struct {
	// Backend is either "badger" (default) or "redis"
	Backend  string        `toml:"backend"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

type Refresh struct {
	// Schedule is a cron expression, e.g. "@every 30m" or "*/15 * * * *"
	Schedule string `toml:"schedule"`
}

// LoadConfig loads TOML configuration from a file path
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", path)
	}

	config := Config{}
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal toml")
	}

	config.applyDefaults(path)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	var result *multierror.Error

	switch c.Cache.Backend {
	case backendBadger:
	case backendRedis:
		if c.Cache.RedisURL == "" {
			result = multierror.Append(result, errors.New("redis_url is required for redis cache backend"))
		}
	default:
		result = multierror.Append(result, errors.Errorf("unsupported cache backend %q", c.Cache.Backend))
	}

	if c.Fetch.Concurrency < 1 {
		result = multierror.Append(result, errors.New("fetch concurrency must be at least 1"))
	}

	if c.Fetch.Timeout < c.Fetch.ConnectTimeout {
		result = multierror.Append(result, errors.New("fetch timeout must not be shorter than connect timeout"))
	}

	if _, err := cron.ParseStandard(c.Refresh.Schedule); err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "invalid refresh schedule %q", c.Refresh.Schedule))
	}

	registry := sources.NewRegistry(c.Sources)
	if len(registry.All()) == 0 {
		result = multierror.Append(result, errors.New("at least one source must be specified"))
	}

	for _, name := range registry.Entities() {
		if list, _ := registry.Preferred(name); len(list) == 0 {
			result = multierror.Append(result, errors.Errorf("entity %q has no sources", name))
		}
	}

	return result.ErrorOrNil()
}

func (c *Config) applyDefaults(configPath string) {
	if c.Log.Filename != "" {
		if c.Log.MaxSize == 0 {
			c.Log.MaxSize = model.DefaultLogMaxSize
		}
		if c.Log.MaxAge == 0 {
			c.Log.MaxAge = model.DefaultLogMaxAge
		}
		if c.Log.MaxBackups == 0 {
			c.Log.MaxBackups = model.DefaultLogMaxBackups
		}
	}

	if c.Database.Dir == "" {
		c.Database.Dir = filepath.Join(filepath.Dir(configPath), "db")
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = backendBadger
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = model.DefaultCacheTTL
	}

	if c.Fetch.Concurrency == 0 {
		c.Fetch.Concurrency = model.DefaultConcurrency
	}

	if c.Fetch.ConnectTimeout == 0 {
		c.Fetch.ConnectTimeout = model.DefaultConnectTimeout
	}

	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = model.DefaultTimeout
	}

	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = model.DefaultUserAgent
	}

	if c.Refresh.Schedule == "" {
		c.Refresh.Schedule = model.DefaultRefreshSchedule
	}
}
