package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI defaults loaded from the TOML config file.
// Command-line flags override config values.
type Config struct {
	// Grid is the default grid preset name or layout CSV path.
	Grid string `toml:"grid"`

	// CacheDir is the artifact cache directory.
	CacheDir string `toml:"cache_dir"`

	// RedisAddr enables the Redis cache backend for serve when set.
	RedisAddr string `toml:"redis_addr"`

	// ListenAddr is the render service listen address.
	ListenAddr string `toml:"listen_addr"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	cacheDir := "geofacet"
	if dir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(dir, "geofacet")
	}
	return Config{
		Grid:       "us-states",
		CacheDir:   cacheDir,
		ListenAddr: ":8080",
	}
}

// loadConfig reads the TOML config file at path, falling back to the
// standard location. A missing file is not an error; defaults apply.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "geofacet", "config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
