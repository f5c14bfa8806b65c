package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"respira/internal/core/model"

	"gopkg.in/yaml.v3"
)

type yamlCue struct {
	Enabled *bool    `yaml:"enabled,omitempty"`
	Volume  *float64 `yaml:"volume,omitempty"`
}

type yamlPhaseCues struct {
	Enabled         *bool    `yaml:"enabled,omitempty"`
	Inhale          *float64 `yaml:"inhale,omitempty"`
	HoldAfterInhale *float64 `yaml:"hold_after_inhale,omitempty"`
	Exhale          *float64 `yaml:"exhale,omitempty"`
	HoldAfterExhale *float64 `yaml:"hold_after_exhale,omitempty"`
}

type yamlAudio struct {
	Enabled    *bool         `yaml:"enabled,omitempty"`
	Volume     *float64      `yaml:"volume,omitempty"`
	Countdown  yamlCue       `yaml:"countdown"`
	Phases     yamlPhaseCues `yaml:"phases"`
	SessionEnd yamlCue       `yaml:"session_end"`
}

type yamlSettings struct {
	PresetName             string    `yaml:"preset_name,omitempty"`
	InhaleSeconds          *int      `yaml:"inhale_seconds,omitempty"`
	HoldAfterInhaleSeconds *int      `yaml:"hold_after_inhale_seconds,omitempty"`
	ExhaleSeconds          *int      `yaml:"exhale_seconds,omitempty"`
	HoldAfterExhaleSeconds *int      `yaml:"hold_after_exhale_seconds,omitempty"`
	PreparationSeconds     *int      `yaml:"preparation_seconds,omitempty"`
	SessionSeconds         *int      `yaml:"session_seconds,omitempty"`
	Audio                  yamlAudio `yaml:"audio"`
}

// File stores the configuration as YAML.
type File struct {
	Path   string
	Limits model.Limits
}

// NewFile returns a settings file at path using the default limits.
func NewFile(path string) *File {
	return &File{Path: path, Limits: model.DefaultLimits()}
}

// Load reads the configuration. If the file does not exist, the defaults are
// returned. If it cannot be parsed, the defaults are returned with the error.
// The result is always clamped.
func (file *File) Load() (model.Config, error) {
	config := model.DefaultConfig().Clamp(file.Limits)

	rawData, err := os.ReadFile(file.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&config, fileData)
	return config.Clamp(file.Limits), nil
}

// Save writes the configuration.
func (file *File) Save(config model.Config) error {
	if err := os.MkdirAll(filepath.Dir(file.Path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(toYamlSettings(config))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(file.Path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func toYamlSettings(config model.Config) yamlSettings {
	audio := config.Audio
	return yamlSettings{
		PresetName:             config.PresetName,
		InhaleSeconds:          &config.Inhale,
		HoldAfterInhaleSeconds: &config.HoldAfterInhale,
		ExhaleSeconds:          &config.Exhale,
		HoldAfterExhaleSeconds: &config.HoldAfterExhale,
		PreparationSeconds:     &config.Preparation,
		SessionSeconds:         &config.Session,
		Audio: yamlAudio{
			Enabled:    &audio.Enabled,
			Volume:     &audio.Volume,
			Countdown:  yamlCue{Enabled: &audio.Countdown.Enabled, Volume: &audio.Countdown.Volume},
			SessionEnd: yamlCue{Enabled: &audio.SessionEnd.Enabled, Volume: &audio.SessionEnd.Volume},
			Phases: yamlPhaseCues{
				Enabled:         &audio.Phases.Enabled,
				Inhale:          &audio.Phases.Inhale,
				HoldAfterInhale: &audio.Phases.HoldAfterInhale,
				Exhale:          &audio.Phases.Exhale,
				HoldAfterExhale: &audio.Phases.HoldAfterExhale,
			},
		},
	}
}

func applyYamlSettings(config *model.Config, fileData yamlSettings) {
	if fileData.PresetName != "" {
		config.PresetName = fileData.PresetName
	}
	setInt(&config.Inhale, fileData.InhaleSeconds)
	setInt(&config.HoldAfterInhale, fileData.HoldAfterInhaleSeconds)
	setInt(&config.Exhale, fileData.ExhaleSeconds)
	setInt(&config.HoldAfterExhale, fileData.HoldAfterExhaleSeconds)
	setInt(&config.Preparation, fileData.PreparationSeconds)
	setInt(&config.Session, fileData.SessionSeconds)

	audio := &config.Audio
	setBool(&audio.Enabled, fileData.Audio.Enabled)
	setFloat(&audio.Volume, fileData.Audio.Volume)
	setBool(&audio.Countdown.Enabled, fileData.Audio.Countdown.Enabled)
	setFloat(&audio.Countdown.Volume, fileData.Audio.Countdown.Volume)
	setBool(&audio.SessionEnd.Enabled, fileData.Audio.SessionEnd.Enabled)
	setFloat(&audio.SessionEnd.Volume, fileData.Audio.SessionEnd.Volume)
	setBool(&audio.Phases.Enabled, fileData.Audio.Phases.Enabled)
	setFloat(&audio.Phases.Inhale, fileData.Audio.Phases.Inhale)
	setFloat(&audio.Phases.HoldAfterInhale, fileData.Audio.Phases.HoldAfterInhale)
	setFloat(&audio.Phases.Exhale, fileData.Audio.Phases.Exhale)
	setFloat(&audio.Phases.HoldAfterExhale, fileData.Audio.Phases.HoldAfterExhale)
}

func setInt(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}

func setFloat(target *float64, value *float64) {
	if value != nil {
		*target = *value
	}
}

func setBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
