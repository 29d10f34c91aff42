// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

// Corpus sources.
const (
	SourcePostgres = "postgres"
	SourceJSON     = "json"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Corpus        CorpusConfig        `yaml:"corpus"`
	Cache         CacheConfig         `yaml:"cache"`
	Valuation     ValuationConfig     `yaml:"valuation"`
	DVF           DVFConfig           `yaml:"dvf"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// CorpusConfig selects where comparable sales are read from.
type CorpusConfig struct {
	Source       string        `yaml:"source"`       // postgres, json
	ExtractPath  string        `yaml:"extract_path"` // required when source is json
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// CacheConfig defines the Redis read-through cache for candidate sales.
type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// ValuationConfig overrides the estimator thresholds. Zero values keep the
// built-in defaults.
type ValuationConfig struct {
	MinSurfaceM2          float64 `yaml:"min_surface_m2"`
	MinRecordSurfaceM2    float64 `yaml:"min_record_surface_m2"`
	MinRecordPrice        float64 `yaml:"min_record_price"`
	MinCandidates         int     `yaml:"min_candidates"`
	MinAfterOutliers      int     `yaml:"min_after_outliers"`
	OutlierSigma          float64 `yaml:"outlier_sigma"`
	SurfaceBand           float64 `yaml:"surface_band"`
	ModifierClamp         float64 `yaml:"modifier_clamp"`
	TransactionCostFactor float64 `yaml:"transaction_cost_factor"`
}

// Params returns the estimator parameters with overrides applied.
func (v *ValuationConfig) Params() valuation.Params {
	p := valuation.DefaultParams()
	if v.MinSurfaceM2 > 0 {
		p.MinSurfaceM2 = v.MinSurfaceM2
	}
	if v.MinRecordSurfaceM2 > 0 {
		p.MinRecordSurfaceM2 = v.MinRecordSurfaceM2
	}
	if v.MinRecordPrice > 0 {
		p.MinRecordPrice = v.MinRecordPrice
	}
	if v.MinCandidates > 0 {
		p.MinCandidates = v.MinCandidates
	}
	if v.MinAfterOutliers > 0 {
		p.MinAfterOutliers = v.MinAfterOutliers
	}
	if v.OutlierSigma > 0 {
		p.OutlierSigma = v.OutlierSigma
	}
	if v.SurfaceBand > 0 {
		p.SurfaceBand = v.SurfaceBand
	}
	if v.ModifierClamp > 0 {
		p.ModifierClamp = v.ModifierClamp
	}
	if v.TransactionCostFactor > 0 {
		p.TransactionCostFactor = v.TransactionCostFactor
	}
	return p
}

// DVFConfig defines the government datasets imported into the corpus.
type DVFConfig struct {
	Datasets    []DatasetConfig `yaml:"datasets"`
	Departments []string        `yaml:"departments"`
	HTTPTimeout time.Duration   `yaml:"http_timeout"`
}

// DatasetConfig is one yearly "valeurs foncières" archive.
type DatasetConfig struct {
	Year int    `yaml:"year"`
	URL  string `yaml:"url"`
}

// ScheduleConfig defines cron intervals. A zero interval disables the job.
type ScheduleConfig struct {
	ImportInterval time.Duration `yaml:"import_interval"`
}

// RateLimitConfig defines the per-client limit on the estimate endpoint.
type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// NotificationsConfig defines lead delivery targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
	Kafka   KafkaConfig   `yaml:"kafka"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// KafkaConfig defines the lead topic producer.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// TracingConfig defines the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Missing files are ignored and variables already
// set are not overridden.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyCorpusDefaults(&cfg.Corpus)
	applyCacheDefaults(&cfg.Cache)
	applyDVFDefaults(&cfg.DVF)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyNotificationsDefaults(&cfg.Notifications)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyCorpusDefaults(c *CorpusConfig) {
	if c.Source == "" {
		c.Source = SourcePostgres
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = 5 * time.Second
	}
}

func applyCacheDefaults(c *CacheConfig) {
	if c.Addr == "" {
		c.Addr = "localhost:6379"
	}
	if c.TTL == 0 {
		c.TTL = time.Hour
	}
}

func applyDVFDefaults(d *DVFConfig) {
	if len(d.Departments) == 0 {
		d.Departments = []string{"72"}
	}
	if d.HTTPTimeout == 0 {
		d.HTTPTimeout = 10 * time.Minute
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.Requests == 0 {
		r.Requests = 5
	}
	if r.Window == 0 {
		r.Window = time.Minute
	}
}

func applyNotificationsDefaults(n *NotificationsConfig) {
	if n.Kafka.Topic == "" {
		n.Kafka.Topic = "dvf.leads"
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

var departmentPattern = regexp.MustCompile(`^(\d{2,3}|2[AB])$`)

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Corpus.Source {
	case SourcePostgres:
		errs = append(errs, validateDatabase(&cfg.Database)...)
	case SourceJSON:
		if cfg.Corpus.ExtractPath == "" {
			errs = append(
				errs,
				fmt.Errorf("corpus.extract_path is required when source is json"),
			)
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"corpus.source must be one of: postgres, json (got %q)",
				cfg.Corpus.Source,
			),
		)
	}

	for i, ds := range cfg.DVF.Datasets {
		if ds.URL == "" {
			errs = append(errs, fmt.Errorf("dvf.datasets[%d].url is required", i))
		}
		if ds.Year < 2014 {
			errs = append(errs, fmt.Errorf("dvf.datasets[%d].year must be 2014 or later", i))
		}
	}
	for _, dep := range cfg.DVF.Departments {
		if !departmentPattern.MatchString(dep) {
			errs = append(errs, fmt.Errorf("dvf.departments: invalid department %q", dep))
		}
	}

	v := cfg.Valuation
	if v.SurfaceBand < 0 || v.SurfaceBand >= 1 {
		errs = append(errs, fmt.Errorf("valuation.surface_band must be in [0, 1)"))
	}
	if v.TransactionCostFactor < 0 || v.TransactionCostFactor > 1 {
		errs = append(errs, fmt.Errorf("valuation.transaction_cost_factor must be between 0 and 1"))
	}
	if v.ModifierClamp < 0 {
		errs = append(errs, fmt.Errorf("valuation.modifier_clamp must not be negative"))
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}
	if cfg.Notifications.Kafka.Enabled && len(cfg.Notifications.Kafka.Brokers) == 0 {
		errs = append(
			errs,
			fmt.Errorf("notifications.kafka.brokers is required when kafka is enabled"),
		)
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be in [0, 1]"))
	}

	return errors.Join(errs...)
}

func validateDatabase(d *DatabaseConfig) []error {
	var errs []error
	if d.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if d.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}
	return errs
}
