package cfg

import (
	"cmp"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	FeedsDir string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed configuration files"`
	DataDir  string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for the product cache and the run-history database"`
	Port     string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Sync behavior
	SyncInterval int  `long:"sync-interval" env:"SYNC_INTERVAL" default:"21600" description:"Seconds between scheduled sync runs"`
	FetchTimeout int  `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Timeout in seconds for a single feed request"`
	FeedDelay    int  `long:"feed-delay" env:"FEED_DELAY" default:"500" description:"Delay in milliseconds between feed requests"`
	SyncOnce     bool `long:"sync-once" env:"SYNC_ONCE" description:"Run a single sync pass and exit"`

	// HTTP / API
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for operational endpoints (optional)"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"FeedSync/1.0" description:"User agent string for HTTP requests"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Copenhagen)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedsDir:     raw.FeedsDir,
		DataDir:      raw.DataDir,
		CacheFile:    filepath.Join(raw.DataDir, "products-cache.json"),
		DBPath:       filepath.Join(raw.DataDir, "feedsync.db"),
		Port:         raw.Port,
		SyncInterval: raw.SyncInterval,
		FetchTimeout: raw.FetchTimeout,
		FeedDelay:    raw.FeedDelay,
		SyncOnce:     raw.SyncOnce,
		APIAccessKey: raw.APIAccessKey,
		UserAgent:    raw.UserAgent,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
