// Package config loads the campus navigator YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config structure for YAML configuration
type Config struct {
	Catalog  Catalog  `yaml:"catalog"`
	Postgres Postgres `yaml:"postgres"`
	Route    Route    `yaml:"route"`
	Map      Map      `yaml:"map"`
	Server   Server   `yaml:"server"`
}

// Catalog selects where location records come from
type Catalog struct {
	// Source is one of json, http, sqlite, postgres, snapshot.
	Source string `yaml:"source"`
	// Path is the JSON file, SQLite DSN or snapshot file, depending on Source.
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
	// APIKey is sent as "apikey" and bearer token to http sources.
	APIKey      string `yaml:"api_key"`
	Table       string `yaml:"table"`
	LoadTimeout int    `yaml:"load_timeout"` // seconds
}

type Postgres struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Database       string `yaml:"database"`
	MaxConnections int    `yaml:"max_connections"`
}

// Route holds the walking pace calibration
type Route struct {
	UnitsPerMinute float64 `yaml:"units_per_minute"`
}

// Map sets the size of the text map drawn by the CLI
type Map struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is found
func Default() Config {
	return Config{
		Catalog: Catalog{
			Source:      "json",
			Path:        "locations.json",
			Table:       "locations",
			LoadTimeout: 10,
		},
		Postgres: Postgres{
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Database:       "campus",
			MaxConnections: 5,
		},
		Route:  Route{UnitsPerMinute: 2},
		Map:    Map{Width: 60, Height: 20},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path, falling back to path+".example" and then to Default.
// Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = os.ReadFile(path + ".example")
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values that can not work
func (c Config) Validate() error {
	switch c.Catalog.Source {
	case "json", "http", "sqlite", "postgres", "snapshot":
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	if c.Catalog.LoadTimeout < 0 {
		return fmt.Errorf("catalog.load_timeout must not be negative")
	}
	if c.Route.UnitsPerMinute < 0 {
		return fmt.Errorf("route.units_per_minute must not be negative")
	}
	if c.Map.Width < 0 || c.Map.Height < 0 {
		return fmt.Errorf("map size must not be negative")
	}
	return nil
}
