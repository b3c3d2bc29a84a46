package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	isolateHome(t)

	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if source != "embedded" {
		t.Errorf("source = %q, expected embedded", source)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded config differs from Default():\n got %+v\nwant %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "gameplay:\n  lives: 4\npaddle:\n  width: 120\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gameplay.Lives != 4 {
		t.Errorf("Lives = %d, expected 4", cfg.Gameplay.Lives)
	}
	if cfg.Paddle.Width != 120 {
		t.Errorf("Paddle.Width = %d, expected 120", cfg.Paddle.Width)
	}
	if cfg.Paddle.Step != 20 {
		t.Errorf("Paddle.Step = %d, expected default 20", cfg.Paddle.Step)
	}
	if cfg.Field.Width != 700 || cfg.Field.Height != 600 {
		t.Errorf("Field = %+v, expected defaults", cfg.Field)
	}
	if cfg.Level != DefaultLevel {
		t.Errorf("Level = %q, expected %q", cfg.Level, DefaultLevel)
	}
}

func TestLoadUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".breaker", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("level: pyramid\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() error = %v", err)
	}
	if cfg.Level != "pyramid" {
		t.Errorf("Level = %q, expected pyramid", cfg.Level)
	}
	if !strings.HasSuffix(source, filepath.Join(".breaker", "configs", FileName)) {
		t.Errorf("source = %q, expected user config path", source)
	}
}

func TestLoadInlineLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	data := `layout:
  row_counts: [3, 2]
  colors: ["#ff0000", "#00ff00"]
  special_rows: [true, false]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Layout == nil {
		t.Fatal("Layout = nil, expected inline layout")
	}
	if got := cfg.Layout.Bricks(); got != 5 {
		t.Errorf("Bricks() = %d, expected 5", got)
	}
	if cfg.Layout.HasSpecial(1) {
		t.Error("HasSpecial(1) = true, expected false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of missing file returned nil error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("field: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed file returned nil error")
	}
}

func TestLevelValidate(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		wantErr bool
		shape   bool
	}{
		{"rows only", Level{RowCounts: []int{13, 11, 9}}, false, false},
		{"matching colors", Level{RowCounts: []int{2, 1}, Colors: []string{"#ff0000", "#00ff00"}}, false, false},
		{"matching flags", Level{RowCounts: []int{2, 1}, SpecialRows: []bool{true, false}}, false, false},
		{"no rows", Level{}, true, false},
		{"colors too short", Level{RowCounts: []int{2, 1}, Colors: []string{"#ff0000"}}, true, true},
		{"flags too long", Level{RowCounts: []int{2}, SpecialRows: []bool{true, true}}, true, true},
		{"zero bricks in row", Level{RowCounts: []int{2, 0}}, true, false},
		{"bad color", Level{RowCounts: []int{1}, Colors: []string{"red"}}, true, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.level.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got := errors.Is(err, ErrLevelShape); got != tc.shape {
				t.Errorf("errors.Is(err, ErrLevelShape) = %v, expected %v", got, tc.shape)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero field", func(c *Config) { c.Field.Width = 0 }},
		{"paddle wider than field", func(c *Config) { c.Paddle.Width = 700 }},
		{"paddle below field", func(c *Config) { c.Paddle.BottomOffset = 600 }},
		{"zero radius", func(c *Config) { c.Ball.Radius = 0 }},
		{"zero lives", func(c *Config) { c.Gameplay.Lives = 0 }},
		{"bad inline layout", func(c *Config) { c.Layout = &Level{RowCounts: []int{1}, Colors: []string{"#fff000", "#000000"}} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() returned nil error")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		lives    int
		width    int
		launchVY float64
	}{
		{DifficultyEasy, 3, 140, -400},
		{DifficultyNormal, 1, 100, -500},
		{DifficultyHard, 1, 80, -625},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := Default()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Gameplay.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Gameplay.Lives, tc.lives)
			}
			if cfg.Paddle.Width != tc.width {
				t.Errorf("Paddle.Width = %d, expected %d", cfg.Paddle.Width, tc.width)
			}
			if cfg.Ball.LaunchVY != tc.launchVY {
				t.Errorf("LaunchVY = %v, expected %v", cfg.Ball.LaunchVY, tc.launchVY)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard"} {
		if _, err := ParsePreset(s); err != nil {
			t.Errorf("ParsePreset(%q) error = %v", s, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) returned nil error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", cfg, Default())
	}
}
