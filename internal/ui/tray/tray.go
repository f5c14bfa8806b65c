package tray

import (
	"fmt"

	"respira/internal/core/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	resetItem  *fyne.MenuItem
	callbacks  Callbacks
	status     session.Status
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    session.StatusIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Ready", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", call(&manager.callbacks.OnToggle))
	manager.resetItem = fyne.NewMenuItem("Reset", call(&manager.callbacks.OnReset))
	manager.resetItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// Status returns the session status shown in the menu.
func (manager *Manager) Status() session.Status {
	return manager.status
}

// Update reflects snapshot in the menu. It must run on the UI goroutine.
func (manager *Manager) Update(snapshot session.Snapshot) {
	manager.status = snapshot.Session.Status
	manager.statusItem.Label = StatusLine(snapshot)
	manager.toggleItem.Label = toggleLabel(snapshot.Session.Status)
	manager.toggleItem.Disabled = snapshot.Session.Status == session.StatusPreparing
	manager.resetItem.Disabled = snapshot.Session.Status == session.StatusIdle
	manager.refreshMenu()
}

// StatusLine is the disabled first entry of the menu.
func StatusLine(snapshot session.Snapshot) string {
	remaining := snapshot.Session.RemainingSeconds
	switch snapshot.Session.Status {
	case session.StatusPreparing:
		return fmt.Sprintf("Starting in %ds", snapshot.Session.RemainingPreparationSeconds)
	case session.StatusRunning:
		return fmt.Sprintf("%s · %02d:%02d left", snapshot.Phase.Label(), remaining/60, remaining%60)
	case session.StatusPaused:
		return fmt.Sprintf("Paused · %02d:%02d left", remaining/60, remaining%60)
	case session.StatusFinished:
		return "Session finished"
	default:
		return "Ready · " + snapshot.Config.Title()
	}
}

func toggleLabel(status session.Status) string {
	switch status {
	case session.StatusRunning:
		return "Pause"
	case session.StatusPaused:
		return "Resume"
	default:
		return "Start"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Respira",
		manager.statusItem,
		fyne.NewMenuItem("Show", call(&manager.callbacks.OnShow)),
		manager.toggleItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", call(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", call(&manager.callbacks.OnQuit)),
	))
}

func call(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
