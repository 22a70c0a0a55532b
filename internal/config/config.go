// Package config holds server settings read from a TOML file.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

type Config struct {
	// Addr is the listen address for the reporting server.
	Addr string `toml:"addr"`

	Dataset Dataset `toml:"dataset"`
}

type Dataset struct {
	// Path to the delimited file loaded at startup.
	Path string `toml:"path"`
}

func Default() Config {
	return Config{
		Addr:    ":8080",
		Dataset: Dataset{Path: "customers.csv"},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns
// the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}
