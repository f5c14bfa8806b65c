package main

import (
	"log/slog"

	"respira/internal/core/model"
	"respira/internal/history"
	"respira/internal/platform"
	"respira/internal/storage"
)

// environment is what every command loads before doing its work.
type environment struct {
	paths    platform.Paths
	settings *storage.File
	config   model.Config
	presets  *model.PresetBook
	logger   *slog.Logger
}

func loadEnvironment() (*environment, error) {
	paths, err := appPaths()
	if err != nil {
		return nil, err
	}
	logger := slog.Default()

	settings := storage.NewFile(paths.Settings)
	config, err := settings.Load()
	if err != nil {
		logger.Warn("using default settings", "path", paths.Settings, "error", err)
	}

	extra, err := model.LoadPresetFile(paths.Presets)
	if err != nil {
		return nil, err
	}

	return &environment{
		paths:    paths,
		settings: settings,
		config:   config,
		presets:  model.NewPresetBook(extra...),
		logger:   logger,
	}, nil
}

func (env *environment) openJournal() (*history.Journal, error) {
	return history.Open(env.paths.History)
}
