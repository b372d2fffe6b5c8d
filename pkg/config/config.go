package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/df07/go-minirt/pkg/storage"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by LoadEnv
const EnvPrefix = "MINIRT_"

// Config holds render settings, output paths and service options.
type Config struct {
	// Render settings
	Width   int `json:"width"`
	Height  int `json:"height"`
	Workers int `json:"workers"`

	// Output
	Output   string `json:"output"`
	Format   string `json:"format"` // default format served by the web service
	NoWindow bool   `json:"no_window"`

	// Services
	S3   storage.S3Config `json:"s3"`
	Addr string           `json:"addr"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width    int
	Height   int
	Workers  int
	Output   string
	NoWindow bool
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadEnv loads dir/.env into the process environment, if present, and then
// overrides fields from MINIRT_* variables. Variables already set in the
// environment win over the .env file.
func (c *Config) LoadEnv(dir string) error {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load .env: %w", err)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"WIDTH", &c.Width},
		{"HEIGHT", &c.Height},
		{"WORKERS", &c.Workers},
	}
	for _, v := range ints {
		raw, ok := lookupEnv(v.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, v.key, err)
		}
		*v.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"OUTPUT", &c.Output},
		{"FORMAT", &c.Format},
		{"ADDR", &c.Addr},
		{"S3_ENDPOINT", &c.S3.Endpoint},
		{"S3_REGION", &c.S3.Region},
		{"S3_BUCKET", &c.S3.Bucket},
		{"S3_ACCESS_KEY", &c.S3.AccessKey},
		{"S3_SECRET_KEY", &c.S3.SecretKey},
	}
	for _, v := range strs {
		if raw, ok := lookupEnv(v.key); ok {
			*v.dst = raw
		}
	}

	if raw, ok := lookupEnv("NO_WINDOW"); ok {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: %sNO_WINDOW: %w", EnvPrefix, err)
		}
		c.NoWindow = b
	}

	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file and environment
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.NoWindow {
		c.NoWindow = true
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Output == "" {
		c.Output = "output.bmp"
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}
