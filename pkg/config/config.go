package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-sphere-raytracer/pkg/output"
)

// ErrInvalidConfig is returned for malformed or out of range settings
var ErrInvalidConfig = errors.New("invalid config")

// Default values used when neither the environment nor .env sets a key
const (
	DefaultScene       = "default"
	DefaultSeed        = 42
	DefaultOutputDir   = "output"
	DefaultWebPort     = 8080
	DefaultRootDirEnv  = "RAYTRACER_ROOT_DIR"
	MaxImageDimension  = 8192
	MaxSamplesPerPixel = 100000
	MaxRecursionDepth  = 10000
)

// Config holds renderer settings read from the environment.
// Zero Width, Height, Samples and MaxDepth mean "use the scene's value".
type Config struct {
	Scene        string
	Width        int
	Height       int
	Samples      int
	MaxDepth     int
	Seed         int64
	OutputDir    string
	PreviewWidth int
	WebPort      int
	S3           output.S3Settings
	RootDir      string
}

// getEnv returns the value of key or fallback when unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, value)
	}
	return n, nil
}

// Load reads rootDir/.env (if present) and then the process environment.
// Variables already set in the environment take precedence over .env.
func Load(rootDir string) (*Config, error) {
	if rootDir != "" {
		if err := godotenv.Load(filepath.Join(rootDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: reading .env: %v", ErrInvalidConfig, err)
		}
	}

	cfg := &Config{
		Scene:     getEnv("RAYTRACER_SCENE", DefaultScene),
		OutputDir: getEnv("RAYTRACER_OUTPUT_DIR", DefaultOutputDir),
		S3: output.S3Settings{
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    os.Getenv("S3_BUCKET"),
		},
		RootDir: rootDir,
	}

	ints := []struct {
		key      string
		fallback int
		dest     *int
	}{
		{"RAYTRACER_WIDTH", 0, &cfg.Width},
		{"RAYTRACER_HEIGHT", 0, &cfg.Height},
		{"RAYTRACER_SAMPLES", 0, &cfg.Samples},
		{"RAYTRACER_MAX_DEPTH", 0, &cfg.MaxDepth},
		{"RAYTRACER_PREVIEW_WIDTH", 0, &cfg.PreviewWidth},
		{"WEB_PORT", DefaultWebPort, &cfg.WebPort},
	}
	for _, entry := range ints {
		n, err := getEnvInt(entry.key, entry.fallback)
		if err != nil {
			return nil, err
		}
		*entry.dest = n
	}

	seed := getEnv("RAYTRACER_SEED", "")
	cfg.Seed = DefaultSeed
	if seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: RAYTRACER_SEED=%q is not an integer", ErrInvalidConfig, seed)
		}
		cfg.Seed = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every numeric setting is in range
func (c *Config) Validate() error {
	if c.Scene == "" {
		return fmt.Errorf("%w: scene name is empty", ErrInvalidConfig)
	}
	checks := []struct {
		name  string
		value int
		max   int
	}{
		{"width", c.Width, MaxImageDimension},
		{"height", c.Height, MaxImageDimension},
		{"samples", c.Samples, MaxSamplesPerPixel},
		{"max depth", c.MaxDepth, MaxRecursionDepth},
		{"preview width", c.PreviewWidth, MaxImageDimension},
	}
	for _, check := range checks {
		if check.value < 0 || check.value > check.max {
			return fmt.Errorf("%w: %s %d must be between 0 and %d", ErrInvalidConfig, check.name, check.value, check.max)
		}
	}
	if c.WebPort <= 0 || c.WebPort > 65535 {
		return fmt.Errorf("%w: web port %d out of range", ErrInvalidConfig, c.WebPort)
	}
	return nil
}

// RootDirFromEnv returns the directory holding .env, defaulting to the working directory
func RootDirFromEnv() string {
	return getEnv(DefaultRootDirEnv, ".")
}
