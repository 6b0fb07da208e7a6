package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points config discovery at empty directories for the duration of a test.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	origDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })
	return tmpDir
}

func mustParse(t *testing.T, args ...string) *Flags {
	t.Helper()
	f, err := ParseFlags("combinemr", args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseFlags(%v) failed: %v", args, err)
	}
	return f
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Preview.Enabled {
		t.Error("expected preview to be enabled by default")
	}
	if cfg.Preview.Width != 512 || cfg.Preview.Height != 512 {
		t.Errorf("expected 512x512 preview, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
	}
	if cfg.Preview.Filter != FilterNearest {
		t.Errorf("expected nearest filter, got %s", cfg.Preview.Filter)
	}
	if cfg.Output.Path != "" || cfg.Output.Save {
		t.Error("expected no output by default")
	}
	if cfg.Output.JPEGQuality != 95 {
		t.Errorf("expected jpeg quality 95, got %d", cfg.Output.JPEGQuality)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Preview.Width = 0 }},
		{"negative height", func(c *Config) { c.Preview.Height = -1 }},
		{"bad filter", func(c *Config) { c.Preview.Filter = "bicubic" }},
		{"quality too low", func(c *Config) { c.Output.JPEGQuality = 0 }},
		{"quality too high", func(c *Config) { c.Output.JPEGQuality = 101 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
preview:
  enabled: false
  width: 1024
  height: 768
  vsync: false
  filter: linear

output:
  path: "out/packed.png"
  save: true
  jpeg_quality: 80

logging:
  level: "debug"
  log_file: "combinemr.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Preview.Enabled {
		t.Error("expected preview to be disabled")
	}
	if cfg.Preview.Width != 1024 || cfg.Preview.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
	}
	if cfg.Preview.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Preview.Filter != FilterLinear {
		t.Errorf("expected linear filter, got %s", cfg.Preview.Filter)
	}
	if cfg.Output.Path != "out/packed.png" || !cfg.Output.Save || cfg.Output.JPEGQuality != 80 {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "combinemr.log" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("preview:\n  width: 300\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Preview.Width != 300 {
		t.Errorf("expected width 300, got %d", cfg.Preview.Width)
	}
	if cfg.Preview.Height != 512 || !cfg.Preview.Enabled {
		t.Error("expected untouched fields to keep their defaults")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := loadFromFile(Default(), configPath); err != nil {
		t.Errorf("empty file should load cleanly, got %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "preview:\n  width: not a number\n  invalid syntax here\n",
		"unknown key": "preview:\n  colour: red\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := isolate(t)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "combinemr.yaml"), []byte("preview:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find combinemr.yaml in current directory")
	}
}

func TestParseFlags(t *testing.T) {
	f := mustParse(t, "-o", "out.png", "-size", "256", "-filter", "linear", "-debug", "m.png", "r.png")

	if f.MetallicPath != "m.png" || f.RoughnessPath != "r.png" {
		t.Errorf("unexpected positional args: %q %q", f.MetallicPath, f.RoughnessPath)
	}
	if f.Output != "out.png" || f.Size != 256 || f.Filter != "linear" || !f.Debug {
		t.Errorf("unexpected flags: %+v", f)
	}
	if !f.IsSet("o") || f.IsSet("preview") {
		t.Error("IsSet does not reflect the command line")
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"one arg", []string{"m.png"}},
		{"three args", []string{"a", "b", "c"}},
		{"unknown flag", []string{"-bogus", "m.png", "r.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := ParseFlags("combinemr", tt.args, &out)
			if !errors.Is(err, ErrUsage) {
				t.Errorf("expected ErrUsage, got %v", err)
			}
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseFlags("combinemr", []string{"--help"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "<metallic_path> <roughness_path>") {
		t.Errorf("help output missing usage line:\n%s", out.String())
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "preview=false",
			args: []string{"-preview=false"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Preview.Enabled {
					t.Error("expected preview disabled")
				}
			},
		},
		{
			name: "headless wins over preview",
			args: []string{"-preview", "-headless"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Preview.Enabled {
					t.Error("expected headless to disable preview")
				}
			},
		},
		{
			name: "size",
			args: []string{"-size", "128"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Preview.Width != 128 || cfg.Preview.Height != 128 {
					t.Errorf("expected 128x128, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
				}
			},
		},
		{
			name: "output and save",
			args: []string{"-o", "x.tif", "-save"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Path != "x.tif" || !cfg.Output.Save {
					t.Errorf("unexpected output config: %+v", cfg.Output)
				}
			},
		},
		{
			name: "log file",
			args: []string{"-log-file", "run.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, append(tt.args, "m.png", "r.png")...)
			cfg := Default()
			applyFlags(cfg, f)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
preview:
  width: 1600
  height: 900
  filter: linear
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	f := mustParse(t, "-config", configPath, "-filter", "nearest", "m.png", "r.png")
	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Filter from flag, size from file
	if cfg.Preview.Filter != FilterNearest {
		t.Errorf("expected nearest filter from flag, got %s", cfg.Preview.Filter)
	}
	if cfg.Preview.Width != 1600 || cfg.Preview.Height != 900 {
		t.Errorf("expected 1600x900 from file, got %dx%d", cfg.Preview.Width, cfg.Preview.Height)
	}
}

func TestLoadRejectsInvalidResult(t *testing.T) {
	isolate(t)
	f := mustParse(t, "-filter", "bicubic", "m.png", "r.png")
	if _, err := Load(f); err == nil {
		t.Error("expected invalid filter to fail Load")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Preview.Width = 640
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Preview.Width != 640 {
		t.Errorf("expected width 640 after reload, got %d", loaded.Preview.Width)
	}
}
