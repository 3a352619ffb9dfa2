package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"Breathe/timer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, timer.Durations{Inhale: 4, Hold: 2, Exhale: 4}, cfg.Breathing)
	assert.Equal(t, timer.DefaultBounds, cfg.Bounds)
	assert.True(t, cfg.Window.SidebarOpen)
	assert.True(t, cfg.Watch)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("BREATHE_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultConfigPath())

	t.Setenv("BREATHE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "breathe", "config.yaml"), DefaultConfigPath())
}

func TestParsePartialOverlay(t *testing.T) {
	cfg, err := Parse([]byte("breathing:\n  hold: 0\nlanguage: pt\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, timer.Durations{Inhale: 4, Hold: 0, Exhale: 4}, cfg.Breathing)
	assert.Equal(t, "pt", cfg.Language)
	assert.Equal(t, timer.WindowWidth, cfg.Window.Width)
}

func TestParseDoesNotMutateBase(t *testing.T) {
	base := DefaultConfig()
	_, err := Parse([]byte("breathing:\n  inhale: 7\n"), base)
	require.NoError(t, err)
	assert.Equal(t, 4, base.Breathing.Inhale)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", ":::invalid:::yaml{{{"},
		{"zero inhale", "breathing:\n  inhale: 0\n"},
		{"negative hold", "breathing:\n  hold: -1\n"},
		{"empty range", "bounds:\n  hold: {min: 4, max: 2}\n"},
		{"bad window", "window:\n  width: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), nil)
			assert.Error(t, err)
		})
	}
}

func TestParseZeroInhaleReportsSentinel(t *testing.T) {
	_, err := Parse([]byte("breathing:\n  inhale: 0\n"), nil)
	assert.ErrorIs(t, err, timer.ErrInhaleTooShort)
}

func TestDurationsClampedToBounds(t *testing.T) {
	cfg, err := Parse([]byte("breathing:\n  inhale: 1\n  exhale: 30\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, timer.Durations{Inhale: 2, Hold: 2, Exhale: 10}, cfg.Durations())
}

func TestLoadDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		DefaultsAsset: {Data: []byte("breathing:\n  inhale: 5\n  hold: 3\n  exhale: 6\n")},
	}
	cfg, err := LoadDefaults(fsys)
	require.NoError(t, err)
	assert.Equal(t, timer.Durations{Inhale: 5, Hold: 3, Exhale: 6}, cfg.Breathing)

	_, err = LoadDefaults(fstest.MapFS{})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml", nil)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	base := DefaultConfig()

	cfg, err := LoadOrDefault("", base)
	require.NoError(t, err)
	assert.Same(t, base, cfg)

	cfg, err = LoadOrDefault("/nonexistent/path/config.yaml", base)
	require.NoError(t, err)
	assert.Same(t, base, cfg)

	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	writeConfigFile(t, path, "breathing:\n  exhale: 8\n")
	cfg, err = LoadOrDefault(path, base)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Breathing.Exhale)

	writeConfigFile(t, path, "{{{")
	_, err = LoadOrDefault(path, base)
	assert.Error(t, err)
}

func TestNewWatcherMissingFile(t *testing.T) {
	tmp := t.TempDir()
	w, err := NewWatcher(filepath.Join(tmp, "config.yaml"), nil, nil)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, timer.DefaultDurations, w.Config().Breathing)
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher("/nonexistent/dir/config.yaml", nil, nil)
	assert.Error(t, err)
}

func TestWatcherReloadsOnFileChange(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	writeConfigFile(t, path, "breathing:\n  inhale: 4\n")

	var mu sync.Mutex
	var changed *Config
	w, err := NewWatcher(path, nil, func(cfg *Config) {
		mu.Lock()
		changed = cfg
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()

	writeConfigFile(t, path, "breathing:\n  inhale: 6\n")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return changed != nil && changed.Breathing.Inhale == 6
	}, 2*time.Second, 50*time.Millisecond)
	assert.Equal(t, 6, w.Config().Breathing.Inhale)
}

func TestWatcherKeepsConfigOnInvalidReload(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	writeConfigFile(t, path, "breathing:\n  hold: 3\n")

	var mu sync.Mutex
	calls := 0
	w, err := NewWatcher(path, nil, func(*Config) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()

	writeConfigFile(t, path, "breathing:\n  exhale: 0\n")
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, 3, w.Config().Breathing.Hold)
	mu.Lock()
	assert.Equal(t, 0, calls)
	mu.Unlock()
}

func TestWatcherClose(t *testing.T) {
	tmp := t.TempDir()
	w, err := NewWatcher(filepath.Join(tmp, "config.yaml"), nil, nil)
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NotPanics(t, func() {
		assert.NoError(t, w.Close())
	})
}

func TestWatcherClearedFileRestoresDefaults(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	writeConfigFile(t, path, "breathing:\n  inhale: 7\n")

	var mu sync.Mutex
	var changed *Config
	w, err := NewWatcher(path, nil, func(cfg *Config) {
		mu.Lock()
		changed = cfg
		mu.Unlock()
	})
	require.NoError(t, err)
	defer w.Close()
	require.Equal(t, 7, w.Config().Breathing.Inhale)

	writeConfigFile(t, path, "")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return changed != nil && changed.Breathing.Inhale == timer.DefaultDurations.Inhale
	}, 2*time.Second, 50*time.Millisecond)
	assert.Equal(t, timer.DefaultDurations, w.Config().Breathing)
}

func TestWatcherRewriteDoesNotFallBackToDefaults(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	writeConfigFile(t, path, "breathing:\n  inhale: 7\n")

	w, err := NewWatcher(path, nil, nil)
	require.NoError(t, err)
	defer w.Close()

	writeConfigFile(t, path, "")
	writeConfigFile(t, path, "breathing:\n  inhale: 8\n")
	time.Sleep(2 * DefaultEmptyGrace)

	assert.Equal(t, 8, w.Config().Breathing.Inhale)
}
