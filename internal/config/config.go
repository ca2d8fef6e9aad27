package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site" mapstructure:"site"`
	Harvest HarvestConfig `yaml:"harvest" mapstructure:"harvest"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SiteConfig describes the target site and how to talk to it.
type SiteConfig struct {
	SitemapURL         string  `yaml:"sitemap_url" mapstructure:"sitemap_url"`
	BasePath           string  `yaml:"base_path" mapstructure:"base_path"`
	UserAgent          string  `yaml:"user_agent" mapstructure:"user_agent"`
	Referer            string  `yaml:"referer" mapstructure:"referer"`
	TimeoutSecs        int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	InsecureSkipVerify bool    `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
	RateLimit          float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// HarvestConfig configures the harvest pipeline.
type HarvestConfig struct {
	MaxPages        int      `yaml:"max_pages" mapstructure:"max_pages"`
	Concurrency     int      `yaml:"concurrency" mapstructure:"concurrency"`
	FallbackVendors []string `yaml:"fallback_vendors" mapstructure:"fallback_vendors"`
}

// StoreConfig configures the database backend. The pool sizing fields
// only apply to the postgres driver.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// OutputConfig configures file export and the terminal preview.
type OutputConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	Format      string `yaml:"format" mapstructure:"format"`
	PreviewRows int    `yaml:"preview_rows" mapstructure:"preview_rows"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("EOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("site.sitemap_url", "https://relutech.com/sitemap-1.xml")
	v.SetDefault("site.base_path", "https://relutech.com/eol-eosl/")
	v.SetDefault("site.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("site.referer", "https://relutech.com/")
	v.SetDefault("site.timeout_secs", 20)
	v.SetDefault("site.insecure_skip_verify", true)
	v.SetDefault("site.rate_limit", 4.0)
	v.SetDefault("harvest.max_pages", 100)
	v.SetDefault("harvest.concurrency", 1)
	v.SetDefault("harvest.fallback_vendors", []string{
		"cisco", "dell", "emc", "emc-ecomm", "hpe",
		"ibm", "juniper", "netapp-ecomm", "nimble", "sun-oracle",
	})
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "eol.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("output.path", "relutech_eol_eosl.csv")
	v.SetDefault("output.format", "csv")
	v.SetDefault("output.preview_rows", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable for the given mode.
// Mode "harvest" validates the full pipeline surface, "site" only the
// crawl target, and "store" only what store-backed commands need.
func (c *Config) Validate(mode string) error {
	var problems []string

	checkSite := func() {
		if c.Site.SitemapURL == "" {
			problems = append(problems, "site.sitemap_url is required")
		}
		if c.Site.BasePath == "" {
			problems = append(problems, "site.base_path is required")
		}
		if c.Site.TimeoutSecs <= 0 {
			problems = append(problems, "site.timeout_secs must be > 0")
		}
		if c.Site.RateLimit <= 0 {
			problems = append(problems, "site.rate_limit must be > 0")
		}
	}
	checkStore := func() {
		switch c.Store.Driver {
		case "sqlite", "postgres":
		default:
			problems = append(problems, "store.driver must be sqlite or postgres")
		}
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	}

	switch mode {
	case "harvest":
		checkSite()
		if c.Harvest.MaxPages < 1 {
			problems = append(problems, "harvest.max_pages must be >= 1")
		}
		if c.Harvest.Concurrency < 1 || c.Harvest.Concurrency > 16 {
			problems = append(problems, "harvest.concurrency must be between 1 and 16")
		}
		if c.Output.Format != "csv" && c.Output.Format != "xlsx" {
			problems = append(problems, "output.format must be csv or xlsx")
		}
		checkStore()
	case "site":
		checkSite()
	case "store":
		checkStore()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
