package model

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// CustomPresetName labels a pattern that was edited by hand.
const CustomPresetName = "Custom"

// PresetPreparation is the countdown used whenever a preset is applied.
const PresetPreparation = 4

// ErrUnknownPreset is returned when a preset key is not defined.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named breathing pattern with a session length.
type Preset struct {
	Key             string `toml:"key"`
	Name            string `toml:"name"`
	Inhale          int    `toml:"inhale"`
	HoldAfterInhale int    `toml:"hold_after_inhale"`
	Exhale          int    `toml:"exhale"`
	HoldAfterExhale int    `toml:"hold_after_exhale"`
	Session         int    `toml:"session_seconds"`
}

// Apply writes the preset into config and clamps the result.
func (preset Preset) Apply(config Config, limits Limits) Config {
	config.Inhale = preset.Inhale
	config.HoldAfterInhale = preset.HoldAfterInhale
	config.Exhale = preset.Exhale
	config.HoldAfterExhale = preset.HoldAfterExhale
	config.Session = preset.Session
	config.Preparation = PresetPreparation
	config.PresetName = preset.Name
	if config.PresetName == "" {
		config.PresetName = preset.Key
	}
	return config.Clamp(limits)
}

// Pattern formats the cycle as inhale-hold-exhale-hold.
func (preset Preset) Pattern() string {
	return fmt.Sprintf("%d-%d-%d-%d", preset.Inhale, preset.HoldAfterInhale, preset.Exhale, preset.HoldAfterExhale)
}

// BuiltinPresets returns the presets shipped with the app.
func BuiltinPresets() []Preset {
	return []Preset{
		{Key: "calm", Name: "Calm", Inhale: 4, HoldAfterInhale: 4, Exhale: 6, HoldAfterExhale: 4, Session: 5 * 60},
		{Key: "focus", Name: "Focus", Inhale: 4, HoldAfterInhale: 2, Exhale: 4, HoldAfterExhale: 2, Session: 4 * 60},
		{Key: "release", Name: "Release", Inhale: 4, HoldAfterInhale: 6, Exhale: 7, HoldAfterExhale: 2, Session: 6 * 60},
	}
}

// PresetBook is an ordered, key-addressable collection of presets.
type PresetBook struct {
	presets []Preset
}

// NewPresetBook builds a book from the built-ins followed by extra presets.
// An extra preset with a built-in key replaces the built-in.
func NewPresetBook(extra ...Preset) *PresetBook {
	book := &PresetBook{}
	for _, preset := range BuiltinPresets() {
		book.put(preset)
	}
	for _, preset := range extra {
		book.put(preset)
	}
	return book
}

func (book *PresetBook) put(preset Preset) {
	preset.Key = strings.ToLower(strings.TrimSpace(preset.Key))
	if preset.Key == "" {
		return
	}
	for index := range book.presets {
		if book.presets[index].Key == preset.Key {
			book.presets[index] = preset
			return
		}
	}
	book.presets = append(book.presets, preset)
}

// Lookup finds a preset by key, ignoring case.
func (book *PresetBook) Lookup(key string) (Preset, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, preset := range book.presets {
		if preset.Key == key {
			return preset, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
}

// All returns the presets in insertion order.
func (book *PresetBook) All() []Preset {
	return append([]Preset(nil), book.presets...)
}

// Keys returns the sorted preset keys.
func (book *PresetBook) Keys() []string {
	keys := make([]string, 0, len(book.presets))
	for _, preset := range book.presets {
		keys = append(keys, preset.Key)
	}
	sort.Strings(keys)
	return keys
}

type presetFile struct {
	Presets []Preset `toml:"preset"`
}

// LoadPresetFile reads user presets from a TOML file with [[preset]] tables.
// A missing file yields no presets and no error.
func LoadPresetFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read presets file %s: %w", path, err)
	}

	var file presetFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("parse presets file %s: %w", path, err)
	}
	return file.Presets, nil
}
