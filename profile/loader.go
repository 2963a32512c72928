package profile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/grove"
)

const debounceDelay = 100 * time.Millisecond

// Loader loads a profile and watches it for changes. Reloaded configs are
// delivered on Updates; the host applies them to its System between ticks
// with System.ApplyConfig.
type Loader struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	config   grove.Config
	onChange []func(grove.Config)

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	updates chan grove.Config
	errChan chan error
	wg      sync.WaitGroup
}

// NewLoader creates a loader for the profile at path.
func NewLoader(path string) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		path:    path,
		logger:  slog.Default().With("component", "grove/profile"),
		config:  grove.DefaultConfig(),
		ctx:     ctx,
		cancel:  cancel,
		updates: make(chan grove.Config, 1),
		errChan: make(chan error, 1),
	}
}

// SetLogger replaces the loader's logger.
func (l *Loader) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l.logger = logger
}

// Load reads and validates the profile.
func (l *Loader) Load() (grove.Config, error) {
	cfg, err := Load(l.path)
	if err != nil {
		return grove.Config{}, err
	}
	l.mu.Lock()
	l.config = cfg
	l.mu.Unlock()
	return cfg, nil
}

// Config returns the last successfully loaded configuration.
func (l *Loader) Config() grove.Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

// OnChange registers a callback invoked from the watch goroutine after each
// successful reload. Register callbacks before calling Watch.
func (l *Loader) OnChange(cb func(grove.Config)) {
	l.mu.Lock()
	l.onChange = append(l.onChange, cb)
	l.mu.Unlock()
}

// Updates delivers reloaded configurations. Only the newest pending update
// is kept.
func (l *Loader) Updates() <-chan grove.Config {
	return l.updates
}

// Errors returns a channel for receiving errors that occur during watching.
func (l *Loader) Errors() <-chan error {
	return l.errChan
}

// Watch starts watching the profile's directory. Editors often replace the
// file rather than write it, so the directory is watched instead of the file.
func (l *Loader) Watch() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watcher != nil {
		return ErrAlreadyWatching
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	l.watcher = watcher

	l.wg.Add(1)
	go l.watchLoop()
	return nil
}

func (l *Loader) watchLoop() {
	defer l.wg.Done()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-l.ctx.Done():
			return

		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(l.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, l.reload)

		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			l.sendErr(err)
		}
	}
}

func (l *Loader) reload() {
	if l.ctx.Err() != nil {
		return
	}
	cfg, err := Load(l.path)
	if err != nil {
		l.logger.Warn("profile reload rejected", "path", l.path, "err", err)
		l.sendErr(fmt.Errorf("reload profile: %w", err))
		return
	}

	l.mu.Lock()
	l.config = cfg
	callbacks := slices.Clone(l.onChange)
	l.mu.Unlock()

	l.logger.Info("profile reloaded", "path", l.path)

	// Keep only the newest update.
	select {
	case l.updates <- cfg:
	default:
		select {
		case <-l.updates:
		default:
		}
		select {
		case l.updates <- cfg:
		default:
		}
	}

	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (l *Loader) sendErr(err error) {
	select {
	case l.errChan <- err:
	default:
	}
}

// Close stops the watcher and releases resources.
func (l *Loader) Close() error {
	l.cancel()
	var err error
	if l.watcher != nil {
		err = l.watcher.Close()
	}
	l.wg.Wait()
	return err
}
