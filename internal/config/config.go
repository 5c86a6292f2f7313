package config

import (
	"fmt"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Executables; bare names are resolved through PATH
	ZFSPath   string `yaml:"zfs_path,omitempty"`
	ZpoolPath string `yaml:"zpool_path,omitempty"`

	// FactsPrefix namespaces the result key: <prefix>_datasets, <prefix>_pools
	FactsPrefix string `yaml:"facts_prefix,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`
	Output   string `yaml:"output,omitempty"`

	// Debug forces debug logging with timestamps and callers
	Debug bool `yaml:"debug,omitempty"`
}

// overrides are read from the environment and win over the file.
type overrides struct {
	Home        string `env:"HOME"`
	ZFSPath     string `env:"ZFSFACTS_ZFS_PATH"`
	ZpoolPath   string `env:"ZFSFACTS_ZPOOL_PATH"`
	FactsPrefix string `env:"ZFSFACTS_FACTS_PREFIX"`
	LogLevel    string `env:"ZFSFACTS_LOG_LEVEL"`
	Output      string `env:"ZFSFACTS_OUTPUT"`
	Debug       string `env:"DEBUG"`
}

var defaultConfig = Config{
	ZFSPath:     "zfs",
	ZpoolPath:   "zpool",
	FactsPrefix: "ansible_zfs",
	LogLevel:    "info",
	Output:      "json",
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// Load reads the config file at path, or the first default location that
// exists, then applies environment overrides from environ.
func Load(fs afero.Fs, path string, environ []string) (*Config, error) {
	var ov overrides
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := env.Unmarshal(es, &ov); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	explicit := path != ""
	if path == "" {
		candidates := []string{"/etc/zfsfacts/config.yaml"}
		if ov.Home != "" {
			candidates = append(candidates, filepath.Join(ov.Home, ".config/zfsfacts/config.yaml"))
		}
		candidates = append(candidates, "config.yaml")
		for _, c := range candidates {
			if ok, _ := afero.Exists(fs, c); ok {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			if explicit {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// Apply defaults for fields the file blanked out
	if cfg.ZFSPath == "" {
		cfg.ZFSPath = defaultConfig.ZFSPath
	}
	if cfg.ZpoolPath == "" {
		cfg.ZpoolPath = defaultConfig.ZpoolPath
	}
	if cfg.FactsPrefix == "" {
		cfg.FactsPrefix = defaultConfig.FactsPrefix
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultConfig.LogLevel
	}
	if cfg.Output == "" {
		cfg.Output = defaultConfig.Output
	}

	cfg.apply(ov)
	return &cfg, nil
}

func (c *Config) apply(ov overrides) {
	if ov.ZFSPath != "" {
		c.ZFSPath = ov.ZFSPath
	}
	if ov.ZpoolPath != "" {
		c.ZpoolPath = ov.ZpoolPath
	}
	if ov.FactsPrefix != "" {
		c.FactsPrefix = ov.FactsPrefix
	}
	if ov.LogLevel != "" {
		c.LogLevel = ov.LogLevel
	}
	if ov.Output != "" {
		c.Output = ov.Output
	}
	if ov.Debug == "1" {
		c.Debug = true
	}
}
