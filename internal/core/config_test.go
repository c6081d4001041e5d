package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return configPath
}

func TestLoadConfig_Success(t *testing.T) {
	configPath := writeConfig(t, `port: 8080
tool:
  type: external
  path: oiiotool
imageDir: ../oiio-images
samples:
  - gif_animation.gif
  - gif_tahoe.gif
conversion:
  source: ../oiiotool/src/tahoe-tiny.tif
  target: tahoe-tiny.gif
database:
  type: sqlite
  connectionString: imgsuite.db
cache:
  enabled: true
  address: localhost:6379
  ttlMinutes: 60`)

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config == nil {
		t.Fatal("Expected config to be non-nil")
	}
	if config.Port != 8080 {
		t.Errorf("Expected port to be 8080, got %d", config.Port)
	}
	if config.Tool.Type != "external" || config.Tool.Path != "oiiotool" {
		t.Errorf("Unexpected tool config: %+v", config.Tool)
	}
	if config.ImageDir != "../oiio-images" {
		t.Errorf("Expected imageDir '../oiio-images', got '%s'", config.ImageDir)
	}
	if len(config.Samples) != 2 {
		t.Errorf("Expected 2 samples, got %d", len(config.Samples))
	}
	if config.Conversion.Target != "tahoe-tiny.gif" {
		t.Errorf("Expected conversion target 'tahoe-tiny.gif', got '%s'", config.Conversion.Target)
	}
	if config.Database.Type != "sqlite" {
		t.Errorf("Expected database type 'sqlite', got '%s'", config.Database.Type)
	}
	if !config.Cache.Enabled || config.Cache.TTLMinutes != 60 {
		t.Errorf("Unexpected cache config: %+v", config.Cache)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	// Test with a non-existent file
	nonExistentPath := "/path/that/does/not/exist/config.yaml"

	config, err := LoadConfig(nonExistentPath)

	// Expect an error
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}

	// Config should be nil
	if config != nil {
		t.Error("Expected config to be nil when file doesn't exist")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "port: [not a number")

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfig_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown tool type",
			content: `tool:
  type: imagemagick
  path: convert`,
		},
		{
			name: "external tool without path",
			content: `tool:
  type: external`,
		},
		{
			name: "empty sample name",
			content: `tool:
  type: builtin
samples:
  - gif_tahoe.gif
  - ""`,
		},
		{
			name: "duplicate sample name",
			content: `tool:
  type: builtin
samples:
  - gif_tahoe.gif
  - gif_tahoe.gif`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, tt.content)
			if _, err := LoadConfig(configPath); err == nil {
				t.Error("Expected error for invalid configuration")
			}
		})
	}
}
