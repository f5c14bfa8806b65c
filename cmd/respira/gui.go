package main

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"respira/internal/audio"
	"respira/internal/core/cue"
	"respira/internal/core/session"
	"respira/internal/core/timekeeper"
	"respira/internal/history"
	"respira/internal/platform"
	"respira/internal/ui/overlay"
	"respira/internal/ui/preferences"
	"respira/internal/ui/tray"
	"respira/resources"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop app",
	Args:  cobra.NoArgs,
	RunE:  runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		cmd.Println("Respira is already running.")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	logger := env.logger

	store := session.NewStore(env.config, session.WithPersister(env.settings), session.WithLogger(logger))

	queue := audio.NewQueue(audio.LogBackend{Logger: logger}, audio.QueueConfig{Logger: logger})
	defer queue.Close()

	keeper := timekeeper.New(store, cue.NewDispatcher(queue), timekeeper.Config{Logger: logger})
	defer keeper.Close()

	journal, err := env.openJournal()
	if err != nil {
		logger.Warn("history disabled", "error", err)
	} else {
		defer journal.Close()
		unsubscribe := history.NewRecorder(journal, logger).Attach(store)
		defer unsubscribe()
	}

	fyneApp := app.NewWithID("io.respira.app")
	activeIcon := resources.MustIcon(resources.IconActive)
	pausedIcon := resources.MustIcon(resources.IconPaused)
	fyneApp.SetIcon(activeIcon)

	sessionWindow := overlay.New(fyneApp, keeper)
	prefsWindow := preferences.New(fyneApp, store, env.presets)

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        sessionWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle:      keeper.Toggle,
			OnReset:       keeper.Reset,
			OnQuit: func() {
				keeper.Close()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(activeIcon)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	fyneApp.Lifecycle().SetOnStarted(func() {
		unsubscribe := store.Subscribe(func(snapshot session.Snapshot) {
			sessionWindow.Update(snapshot)
			if trayManager == nil {
				return
			}
			fyne.Do(func() {
				trayManager.Update(snapshot)
				if snapshot.Session.Status == session.StatusPaused {
					desktopApp.SetSystemTrayIcon(pausedIcon)
				} else {
					desktopApp.SetSystemTrayIcon(activeIcon)
				}
			})
		})
		fyneApp.Lifecycle().SetOnStopped(unsubscribe)
	})

	guard.Serve(func() {
		fyne.Do(sessionWindow.Show)
	})

	sessionWindow.Show()
	fyneApp.Run()
	return nil
}
