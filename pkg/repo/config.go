package repo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFileName = "config.toml"

// Config stores repository-local settings, read from the store
// directory's config.toml on open.
type Config struct {
	Core CoreConfig `toml:"core"`
}

// CoreConfig is the [core] table.
type CoreConfig struct {
	Bare          bool   `toml:"bare"`
	DefaultBranch string `toml:"defaultbranch"`
}

// readConfig reads config.toml from the store directory. A missing
// file returns defaults, so stores created by older layouts still
// open.
func readConfig(storeDir string) (*Config, error) {
	cfg := &Config{}
	cfg.Core.DefaultBranch = DefaultBranch

	path := filepath.Join(storeDir, configFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if cfg.Core.DefaultBranch == "" {
		cfg.Core.DefaultBranch = DefaultBranch
	}
	return cfg, nil
}

// writeConfig atomically writes config.toml into the store directory.
func writeConfig(storeDir string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}

	tmp, err := os.CreateTemp(storeDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(storeDir, configFileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

// Config returns the repository configuration read at open time.
func (r *Repository) Config() *Config {
	r.ensureLive()
	return r.config
}
