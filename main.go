package main

import (
	"context"
	"embed"
	"log"

	"Breathe/config"
	"Breathe/timer"
	"Breathe/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

//go:embed assets/*
var content embed.FS

func main() {
	fyneApp := app.New()

	if icon, err := ui.IconResource(256); err == nil {
		fyneApp.SetIcon(icon)
	} else {
		log.Printf("Failed to render icon. %v", err)
	}

	fyneApp.Settings().SetTheme(ui.NewCustomTheme())

	base, cfg, path := loadConfig()

	a := NewAppManager(content, cfg, timer.SystemTicks)

	w := ui.CreateMainWindow(a, fyneApp, a.view, fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	a.mainWindow = w

	a.WatchConfig(path, base)
	defer a.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	w.SetOnClosed(func() {
		cancel()
	})

	go a.Run(ctx)

	w.ShowAndRun()
}

// loadConfig returns the shipped defaults, the effective config and the user
// config path.
func loadConfig() (*config.Config, *config.Config, string) {
	base, err := config.LoadDefaults(content)
	if err != nil {
		log.Printf("Failed to load shipped defaults, using built-in values. %v", err)
		base = config.DefaultConfig()
	}

	path := config.DefaultConfigPath()
	cfg, err := config.LoadOrDefault(path, base)
	if err != nil {
		log.Printf("Ignoring config %s: %v", path, err)
		cfg = base
	}
	return base, cfg, path
}
