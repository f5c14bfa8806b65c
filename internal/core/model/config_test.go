package model

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestClampForcesDurationsIntoLimits(t *testing.T) {
	limits := DefaultLimits()
	config := Config{
		Inhale:          0,
		HoldAfterInhale: -3,
		Exhale:          99,
		HoldAfterExhale: 7,
		Preparation:     0,
		Session:         10,
	}.Clamp(limits)

	if config.Inhale != 1 {
		t.Errorf("inhale = %d, want 1", config.Inhale)
	}
	if config.HoldAfterInhale != 0 {
		t.Errorf("hold after inhale = %d, want 0", config.HoldAfterInhale)
	}
	if config.Exhale != MaxBreathSeconds {
		t.Errorf("exhale = %d, want %d", config.Exhale, MaxBreathSeconds)
	}
	if config.HoldAfterExhale != 7 {
		t.Errorf("hold after exhale = %d, want 7", config.HoldAfterExhale)
	}
	if config.Preparation != 1 {
		t.Errorf("preparation = %d, want 1", config.Preparation)
	}
	if config.Session != 60 {
		t.Errorf("session = %d, want 60", config.Session)
	}
}

func TestAudioClamp(t *testing.T) {
	audio := AudioConfig{
		Volume:     1.5,
		Countdown:  CueSettings{Volume: -1},
		SessionEnd: CueSettings{Volume: math.NaN()},
		Phases:     PhaseCues{Inhale: 2, Exhale: 0.4},
	}.Clamp()

	if audio.Volume != 1 || audio.Countdown.Volume != 0 || audio.SessionEnd.Volume != 0 {
		t.Fatalf("unexpected clamp result: %+v", audio)
	}
	if audio.Phases.Inhale != 1 || audio.Phases.Exhale != 0.4 {
		t.Fatalf("unexpected phase volumes: %+v", audio.Phases)
	}
}

func TestVolumeSteps(t *testing.T) {
	tests := []struct {
		step int
		want float64
	}{
		{-2, 0},
		{0, 0},
		{7, 0.7},
		{10, 1},
		{14, 1},
	}
	for _, tt := range tests {
		if got := VolumeStep(tt.step); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("VolumeStep(%d) = %v, want %v", tt.step, got, tt.want)
		}
	}
	if got := StepFromVolume(0.66); got != 7 {
		t.Errorf("StepFromVolume(0.66) = %d, want 7", got)
	}
}

func TestTitleAndPattern(t *testing.T) {
	config := DefaultConfig()
	if got := config.Title(); got != "Custom 2-2-2-2" {
		t.Fatalf("title = %q", got)
	}
	config.PresetName = ""
	if got := config.Title(); got != "Custom 2-2-2-2" {
		t.Fatalf("title without preset = %q", got)
	}
}

func TestPresetApply(t *testing.T) {
	book := NewPresetBook()
	calm, err := book.Lookup("Calm")
	if err != nil {
		t.Fatalf("lookup calm: %v", err)
	}

	config := calm.Apply(DefaultConfig(), DefaultLimits())
	if config.Pattern() != "4-4-6-4" {
		t.Errorf("pattern = %s, want 4-4-6-4", config.Pattern())
	}
	if config.Session != 300 || config.Preparation != PresetPreparation {
		t.Errorf("session/preparation = %d/%d", config.Session, config.Preparation)
	}
	if config.PresetName != "Calm" {
		t.Errorf("preset name = %q", config.PresetName)
	}
	if config.Audio != DefaultAudioConfig() {
		t.Errorf("audio settings should be untouched")
	}
}

func TestPresetLookupUnknown(t *testing.T) {
	_, err := NewPresetBook().Lookup("nope")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadPresetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.toml")
	content := `
[[preset]]
key = "box"
name = "Box"
inhale = 4
hold_after_inhale = 4
exhale = 4
hold_after_exhale = 4
session_seconds = 240

[[preset]]
key = "Calm"
name = "Calmer"
inhale = 5
hold_after_inhale = 0
exhale = 8
hold_after_exhale = 0
session_seconds = 600
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}

	presets, err := LoadPresetFile(path)
	if err != nil {
		t.Fatalf("load presets: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(presets))
	}

	book := NewPresetBook(presets...)
	if len(book.All()) != 4 {
		t.Fatalf("expected 4 presets in book, got %d", len(book.All()))
	}
	calm, err := book.Lookup("calm")
	if err != nil {
		t.Fatalf("lookup calm: %v", err)
	}
	if calm.Name != "Calmer" || calm.Exhale != 8 {
		t.Fatalf("file preset should override built-in, got %+v", calm)
	}
	if _, err := book.Lookup("box"); err != nil {
		t.Fatalf("lookup box: %v", err)
	}
}

func TestLoadPresetFileMissing(t *testing.T) {
	presets, err := LoadPresetFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil || presets != nil {
		t.Fatalf("missing file should yield nothing, got %v, %v", presets, err)
	}
}

func TestLoadPresetFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	if err := os.WriteFile(path, []byte("[[preset]\nkey ="), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}
	if _, err := LoadPresetFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}
