// Package config loads the tool configuration from an optional TOML file.
//
// Every tunable has a default matching the behavior the pool operator has
// tolerated for years; a missing config file means "run with defaults".
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/392781/mint-backgrounds/pkg/pool"
)

// Duration is a time.Duration that unmarshals from TOML strings like
// "500ms" or "5s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all tool settings.
type Config struct {
	BaseURL       string `toml:"base_url"`       // pool root, no trailing slash
	OutputDir     string `toml:"output_dir"`     // extracted asset tree
	InventoryFile string `toml:"inventory_file"` // persisted versions document
	MinSizeMB     int    `toml:"min_size_mb"`    // tarballs below this are placeholders

	RequestDelay    Duration `toml:"request_delay"`    // pause before every request
	RequestJitter   Duration `toml:"request_jitter"`   // random extra pause, upper bound
	MaxRetries      int      `toml:"max_retries"`      // attempts per page fetch
	RetryDelay      Duration `toml:"retry_delay"`      // base backoff between attempts
	FetchTimeout    Duration `toml:"fetch_timeout"`    // listing page timeout
	DownloadTimeout Duration `toml:"download_timeout"` // tarball download timeout
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:         "http://packages.linuxmint.com/pool/main/m",
		OutputDir:       "mint-backgrounds",
		InventoryFile:   "versions.json",
		MinSizeMB:       13,
		RequestDelay:    Duration(500 * time.Millisecond),
		RequestJitter:   Duration(500 * time.Millisecond),
		MaxRetries:      3,
		RetryDelay:      Duration(5 * time.Second),
		FetchTimeout:    Duration(30 * time.Second),
		DownloadTimeout: Duration(60 * time.Second),
	}
}

// Load reads the TOML file at path over the defaults. An empty path means
// "no config file": the defaults are returned as-is. A path that does not
// exist or does not parse is an error, since the user asked for it
// explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// MinSizeBytes converts the configured megabyte threshold to bytes.
func (c Config) MinSizeBytes() int64 {
	return int64(c.MinSizeMB) * 1024 * 1024
}

// PoolOptions maps the config onto pool client options.
func (c Config) PoolOptions() pool.Options {
	return pool.Options{
		RequestDelay:    c.RequestDelay.Std(),
		Jitter:          c.RequestJitter.Std(),
		MaxRetries:      c.MaxRetries,
		RetryDelay:      c.RetryDelay.Std(),
		FetchTimeout:    c.FetchTimeout.Std(),
		DownloadTimeout: c.DownloadTimeout.Std(),
	}
}
