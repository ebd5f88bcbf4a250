package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// Result sink names accepted by results.sinks
const (
	SinkFile     = "file"
	SinkDatabase = "database"
	SinkNATS     = "nats"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// SnapshotsConfig holds the snapshot source configuration
type SnapshotsConfig struct {
	Dir         string        `mapstructure:"dir"`
	Prefix      string        `mapstructure:"prefix"`
	LiveURL     string        `mapstructure:"live_url"`     // Optional endpoint serving the current world state
	HTTPTimeout time.Duration `mapstructure:"http_timeout"` // Timeout of a single live fetch attempt
	Timezone    string        `mapstructure:"timezone"`     // Zone the backup filenames are stamped in, empty for local
}

// ResultsConfig holds the result sink configuration
type ResultsConfig struct {
	Sinks []string `mapstructure:"sinks"`
	Dir   string   `mapstructure:"dir"`
}

// TimelineConfig holds configuration for the timeline program
type TimelineConfig struct {
	BaseConfig `mapstructure:",squash"`
	Snapshots  SnapshotsConfig `mapstructure:"snapshots"`
	Results    ResultsConfig   `mapstructure:"results"`
	Worker     WorkerConfig    `mapstructure:"worker"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
}

// LoadTimelineConfig loads configuration for the timeline program
func LoadTimelineConfig(configFile string, envPath string) (*TimelineConfig, error) {
	v := configureViper("timeline", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("snapshots.dir", ".")
	v.SetDefault("snapshots.prefix", domain.DefaultSnapshotPrefix)
	v.SetDefault("snapshots.http_timeout", "30s")
	v.SetDefault("results.sinks", []string{SinkFile})
	v.SetDefault("results.dir", "results")
	v.SetDefault("worker.pool_size", 8)
	v.SetDefault("worker.queue_size", 1024)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("nats.stream_name", "TIMELINES")
	v.SetDefault("nats.subject_prefix", "timelines")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "ff-timeline")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg TimelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the fields required by the enabled sinks
func (c *TimelineConfig) Validate() error {
	if len(c.Results.Sinks) == 0 {
		return errors.New("results.sinks must name at least one sink")
	}

	for _, sink := range c.Results.Sinks {
		switch sink {
		case SinkFile:
			if c.Results.Dir == "" {
				return errors.New("results.dir is required for the file sink")
			}
		case SinkDatabase:
			if c.Database.Host == "" {
				return errors.New("database.host is required for the database sink")
			}
			if c.Database.DBName == "" {
				return errors.New("database.dbname is required for the database sink")
			}
		case SinkNATS:
			if c.NATS.URL == "" {
				return errors.New("nats.url is required for the nats sink")
			}
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownSink, sink)
		}
	}

	if c.Snapshots.Timezone != "" {
		if _, err := time.LoadLocation(c.Snapshots.Timezone); err != nil {
			return fmt.Errorf("invalid snapshots.timezone: %w", err)
		}
	}

	return nil
}

// HasSink reports whether the named sink is enabled
func (c *TimelineConfig) HasSink(name string) bool {
	return slices.Contains(c.Results.Sinks, name)
}

// Location returns the zone of the snapshot filenames
func (c *SnapshotsConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_TIMELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Snapshots
		"snapshots.dir",
		"snapshots.prefix",
		"snapshots.live_url",
		"snapshots.http_timeout",
		"snapshots.timezone",
		// Results
		"results.sinks",
		"results.dir",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // Later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the nearest ancestor holding a config directory
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
