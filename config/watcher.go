package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultEmptyGrace is how long a config file may stay empty before the
// watcher treats it as cleared rather than mid-rewrite.
const DefaultEmptyGrace = 250 * time.Millisecond

// Watcher watches the user config file and reloads it on change.
type Watcher struct {
	path       string
	base       *Config
	config     *Config
	mu         sync.RWMutex
	watcher    *fsnotify.Watcher
	onChange   func(*Config)
	emptyGrace time.Duration
	done       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once
	closeErr   error
}

// NewWatcher loads path over base and starts watching it. The file may be
// missing at start; its directory must exist.
func NewWatcher(path string, base *Config, onChange func(*Config)) (*Watcher, error) {
	if base == nil {
		base = DefaultConfig()
	}
	cfg, err := LoadOrDefault(path, base)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:       path,
		base:       base,
		config:     cfg,
		watcher:    fsWatcher,
		onChange:   onChange,
		emptyGrace: DefaultEmptyGrace,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}

	// Watch the directory so editors that replace the file are handled.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.watch()

	return w, nil
}

// Config returns the current configuration.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

func (w *Watcher) watch() {
	defer close(w.stopped)
	filename := filepath.Base(w.path)

	// Armed while the file reads empty; a write with content disarms it.
	var settle <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case <-settle:
			settle = nil
			w.reload(true)
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if w.reload(false) {
				settle = time.After(w.emptyGrace)
			} else {
				settle = nil
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)
		}
	}
}

// reload parses the file over base and reports whether it was skipped for
// being empty. Truncation fires its own event before the new content lands,
// so an empty file only counts once settled is set; it then restores base.
func (w *Watcher) reload(settled bool) (empty bool) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		log.Printf("Failed to read config %s: %v", w.path, err)
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if !settled {
			return true
		}
		log.Printf("Config %s is empty, using defaults", w.path)
	}
	cfg, err := Parse(data, w.base)
	if err != nil {
		log.Printf("Failed to reload config %s: %v", w.path, err)
		return false
	}

	w.mu.Lock()
	w.config = cfg
	w.mu.Unlock()

	log.Printf("Config reloaded from %s", w.path)

	if w.onChange != nil {
		w.onChange(cfg)
	}
	return false
}

// Close stops watching. No callback runs after Close returns. Later calls
// return the first result.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.watcher.Close()
		<-w.stopped
	})
	return w.closeErr
}
