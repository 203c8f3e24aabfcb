package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var configKeys = []string{
	"RAYTRACER_SCENE", "RAYTRACER_WIDTH", "RAYTRACER_HEIGHT", "RAYTRACER_SAMPLES",
	"RAYTRACER_MAX_DEPTH", "RAYTRACER_SEED", "RAYTRACER_OUTPUT_DIR", "RAYTRACER_PREVIEW_WIDTH",
	"S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "WEB_PORT",
}

// clearEnv unsets every config key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scene != DefaultScene || cfg.Seed != DefaultSeed || cfg.OutputDir != DefaultOutputDir {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.Width != 0 || cfg.Height != 0 || cfg.Samples != 0 || cfg.MaxDepth != 0 {
		t.Errorf("Render settings should default to the scene's values, got %+v", cfg)
	}
	if cfg.WebPort != DefaultWebPort {
		t.Errorf("WebPort = %d, want %d", cfg.WebPort, DefaultWebPort)
	}
	if cfg.S3.Configured() {
		t.Error("S3 should not be configured without credentials")
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAYTRACER_SCENE", "metal-pair")
	t.Setenv("RAYTRACER_WIDTH", "200")
	t.Setenv("RAYTRACER_HEIGHT", "100")
	t.Setenv("RAYTRACER_SAMPLES", "16")
	t.Setenv("RAYTRACER_MAX_DEPTH", "8")
	t.Setenv("RAYTRACER_SEED", "-7")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")
	t.Setenv("S3_BUCKET", "renders")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scene != "metal-pair" || cfg.Width != 200 || cfg.Height != 100 {
		t.Errorf("Unexpected scene settings %+v", cfg)
	}
	if cfg.Samples != 16 || cfg.MaxDepth != 8 || cfg.Seed != -7 {
		t.Errorf("Unexpected sampling settings %+v", cfg)
	}
	if !cfg.S3.Configured() || cfg.S3.Bucket != "renders" {
		t.Errorf("Unexpected S3 settings %+v", cfg.S3)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "RAYTRACER_SCENE=spheregrid\nRAYTRACER_SAMPLES=12\nWEB_PORT=9000\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RAYTRACER_SAMPLES", "30")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scene != "spheregrid" || cfg.WebPort != 9000 {
		t.Errorf(".env values not loaded: %+v", cfg)
	}
	if cfg.Samples != 30 {
		t.Errorf("Environment should override .env, got samples %d", cfg.Samples)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"RAYTRACER_WIDTH", "wide"},
		{"RAYTRACER_HEIGHT", "-1"},
		{"RAYTRACER_SAMPLES", "1.5"},
		{"RAYTRACER_SEED", "abc"},
		{"RAYTRACER_MAX_DEPTH", "99999999"},
		{"WEB_PORT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig for %s=%q, got %v", tt.key, tt.value, err)
			}
		})
	}
}

func TestValidate_EmptyScene(t *testing.T) {
	cfg := &Config{WebPort: DefaultWebPort}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}
