package config

import "testing"

func TestDefaultRun(t *testing.T) {
	cfg := DefaultRun()
	if cfg.Speed != 500 {
		t.Errorf("Speed = %d, want 500", cfg.Speed)
	}
	if cfg.Scale != 10 {
		t.Errorf("Scale = %d, want 10", cfg.Scale)
	}
	if cfg.Layout != "lefthand" {
		t.Errorf("Layout = %q, want lefthand", cfg.Layout)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/ec8-run.toml")
	if err == nil {
		t.Fatal("Load(missing file) = nil error, want an error")
	}
	if cfg.Speed != 500 {
		t.Errorf("Speed on failed load = %d, want default 500", cfg.Speed)
	}
}
