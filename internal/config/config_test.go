package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitlab/internal/engine"
)

func TestDefault(t *testing.T) {
	sc := Default()

	if sc.Name != "default" {
		t.Errorf("name %q, want default", sc.Name)
	}
	if sc.Engine.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if sc.Engine.NumBodies != engine.DefaultBodies {
		t.Errorf("num bodies %d, want %d", sc.Engine.NumBodies, engine.DefaultBodies)
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("default scenario invalid: %v", err)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")

	sc := Default()
	sc.Name = "roundtrip"
	sc.Seed = 1234
	sc.Engine.G = 2000
	sc.Engine.NumBodies = 4
	sc.Engine.AdaptiveStep = true

	if err := Save(path, sc); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "roundtrip" || got.Seed != 1234 {
		t.Errorf("metadata did not round-trip: %+v", got)
	}
	if got.Engine != sc.Engine {
		t.Errorf("engine config did not round-trip:\ngot  %+v\nwant %+v", got.Engine, sc.Engine)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	data := "name: sparse\nengine:\n  num_bodies: 5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Engine.NumBodies != 5 {
		t.Errorf("num bodies %d, want 5", sc.Engine.NumBodies)
	}
	if sc.Engine.G != engine.DefaultG {
		t.Errorf("g %f, want default %f", sc.Engine.G, engine.DefaultG)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*engine.Config)
	}{
		{"zero dt", func(c *engine.Config) { c.Dt = 0 }},
		{"too few bodies", func(c *engine.Config) { c.NumBodies = 1 }},
		{"too many bodies", func(c *engine.Config) { c.NumBodies = 9 }},
		{"inverted mass range", func(c *engine.Config) { c.MinMassExp = 4; c.MaxMassExp = 2 }},
		{"inverted velocity range", func(c *engine.Config) { c.MinVelocity = 5; c.MaxVelocity = -5 }},
		{"adaptive without ratio", func(c *engine.Config) { c.AdaptiveStep = true; c.MaxPositionChangeRatio = 0 }},
		{"zero canvas", func(c *engine.Config) { c.CanvasWidth = 0 }},
		{"negative trail", func(c *engine.Config) { c.MaxTrailLength = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := Default()
			tt.mutate(&sc.Engine)
			if err := sc.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	if len(ListPresets()) == 0 {
		t.Fatal("no presets registered")
	}

	for name, sc := range Presets {
		if err := sc.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}

	if GetPreset("binary") == nil {
		t.Error("binary preset missing")
	}
	if GetPreset("binary").Engine.NumBodies != 2 {
		t.Error("binary preset should have 2 bodies")
	}
	if GetPreset("nope") != nil {
		t.Error("expected nil for unknown preset")
	}
}
