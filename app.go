// Package main contains the application wiring and the AppManager which
// connects the breathing clock, the command loop, the configuration and the UI.
//
// Maintenance notes / tips:
//   - Concurrency model: the control.Loop goroutine owns the clock. Commands
//     from the UI and the one-second ticks are handled in the same select, so
//     they never interleave. The ticker exists only while the clock runs and
//     is released when the loop stops it or when the window closes.
//   - Snapshots leave the loop through onSnapshot and reach the widgets via
//     fyne.Do; never touch widgets from the loop goroutine directly.
//   - The config watcher runs its callback on its own goroutine. It only
//     schedules slider moves on the UI goroutine; the sliders then enqueue
//     the new durations like a user drag would.
package main

import (
	"context"
	"embed"
	"log"

	"Breathe/config"
	"Breathe/control"
	"Breathe/i18n"
	"Breathe/timer"
	"Breathe/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"gopkg.in/yaml.v3"
)

// AboutAsset holds the per-language help text.
const AboutAsset = "assets/about.yaml"

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	view       *ui.View
	clock      *timer.Clock
	loop       *control.Loop
	cfg        *config.Config
	watcher    *config.Watcher
	content    embed.FS // Embedded file system for assets
}

// NewAppManager creates the clock, the loop and the view from cfg.
func NewAppManager(content embed.FS, cfg *config.Config, ticks timer.TickSource) *AppManager {
	a := &AppManager{content: content, cfg: cfg}
	i18n.SetLang(cfg.Language)

	d := cfg.Durations()
	log.Printf("Breathing pattern %d-%d-%d", d.Inhale, d.Hold, d.Exhale)

	a.clock = timer.NewClock(d)
	a.loop = control.NewLoop(a.clock, ticks, a.onSnapshot)
	a.view = ui.NewView(a, cfg.Bounds, d, cfg.Window.SidebarOpen)
	return a
}

// Run processes commands and ticks until ctx is cancelled.
func (a *AppManager) Run(ctx context.Context) {
	a.loop.Run(ctx)
}

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	a.loop.Enqueue(cmd)
}

func (a *AppManager) onSnapshot(s timer.Snapshot) {
	if a.view != nil {
		a.view.UpdateDisplay(s)
	}
}

// WatchConfig reloads the user config file at path on change. Failing to
// watch is not fatal; the window keeps the values it started with.
func (a *AppManager) WatchConfig(path string, base *config.Config) {
	if path == "" || !a.cfg.Watch {
		return
	}
	w, err := config.NewWatcher(path, base, a.applyConfig)
	if err != nil {
		log.Printf("Config watching disabled for %s: %v", path, err)
		return
	}
	a.watcher = w
	log.Printf("Watching config %s", path)
}

func (a *AppManager) applyConfig(cfg *config.Config) {
	d := cfg.Durations()
	fyne.Do(func() {
		a.view.SetDurations(d)
	})
}

// HandleKeyRune handles key presses for the application.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		a.EnqueueCommand(control.Command{Type: control.CmdToggle})
	case 's', 'S':
		a.view.ToggleSidebar()
	case 'r', 'R':
		a.EnqueueCommand(control.Command{Type: control.CmdReset})
	case 'h', 'H', '?':
		a.ShowInfoDialog(i18n.T("Help"), fyne.NewSize(480, 320))
	}
}

// ShowInfoDialog shows the help text in the current language.
func (a *AppManager) ShowInfoDialog(title string, minSize fyne.Size) {
	if a.mainWindow == nil {
		return
	}
	text, err := a.aboutText(i18n.GetLang())
	if err != nil {
		dialog.ShowError(err, a.mainWindow)
		return
	}

	label := widget.NewLabel(text)
	label.Wrapping = fyne.TextWrapWord

	scrollableContent := container.NewVScroll(label)
	scrollableContent.SetMinSize(minSize)

	dialog.ShowCustom(title, i18n.T("Close"), scrollableContent, a.mainWindow)
}

func (a *AppManager) aboutText(lang string) (string, error) {
	bytes, err := a.content.ReadFile(AboutAsset)
	if err != nil {
		return "", err
	}
	var texts map[string]string
	if err := yaml.Unmarshal(bytes, &texts); err != nil {
		return "", err
	}
	if t, ok := texts[lang]; ok {
		return t, nil
	}
	return texts["en"], nil
}

// Shutdown stops watching the config file.
func (a *AppManager) Shutdown() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("Closing config watcher: %v", err)
		}
	}
}
