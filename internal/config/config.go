package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is assembled in three layers: defaults, then an optional YAML
// file, then environment overrides. Env wins so containers can tweak a
// checked-in config file without editing it.
type Config struct {
	Addr     string   `yaml:"addr"`
	LogLevel string   `yaml:"log_level"`
	SeedDir  string   `yaml:"seed_dir"`
	Database Database `yaml:"database"`
	Uploads  Uploads  `yaml:"uploads"`
	Session  Session  `yaml:"session"`
}

type Database struct {
	Driver string `yaml:"driver"` // postgres|sqlite
	DSN    string `yaml:"dsn"`
}

type Uploads struct {
	Driver string `yaml:"driver"` // dir|s3|memory
	Dir    string `yaml:"dir"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type Session struct {
	Secret string `yaml:"secret"`
	Secure bool   `yaml:"secure"`
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		SeedDir:  "seed_data",
		Database: Database{Driver: "sqlite", DSN: "petrescue.db"},
		Uploads:  Uploads{Driver: "dir", Dir: "uploads"},
	}
}

// Load reads path (when non-empty) over the defaults and applies env
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	// DATABASE_URL implies postgres, the production setup.
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.Driver = "postgres"
		c.Database.DSN = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if os.Getenv("APP_HTTPS") == "1" {
		c.Session.Secure = true
	}
	if v := os.Getenv("UPLOADS_DRIVER"); v != "" {
		c.Uploads.Driver = v
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		c.Uploads.Dir = v
	}
	if v := os.Getenv("UPLOADS_BUCKET"); v != "" {
		c.Uploads.Bucket = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("SEED_DIR"); v != "" {
		c.SeedDir = v
	}
}
