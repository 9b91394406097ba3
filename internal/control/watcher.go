// Package control runs the control-side helpers of the command line tool:
// presets re-applied from a file while audio is rendering.
package control

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/intensifier/pkg/framework/debug"
	"github.com/justyntemme/intensifier/pkg/preset"
)

// DefaultSettle is how long the watcher waits after the last change before
// reloading, so a burst of writes from an editor is applied once.
const DefaultSettle = 100 * time.Millisecond

// Watcher re-applies a named preset whenever its preset file changes.
// SetParameter is the only call it makes on the target, so it may run
// concurrently with rendering.
type Watcher struct {
	path   string
	name   string
	target preset.Target
	logger *debug.Logger
	settle time.Duration

	// Overrides, keyed by identifier, are merged into the preset on every
	// apply.
	Overrides map[string]float32

	// OnApply, if set, is called after every successful apply.
	OnApply func(preset.Preset)
}

// NewWatcher creates a watcher for preset name in the file at path.
func NewWatcher(path, name string, target preset.Target, logger *debug.Logger) *Watcher {
	if logger == nil {
		logger = debug.Default()
	}
	return &Watcher{
		path:   path,
		name:   name,
		target: target,
		logger: logger,
		settle: DefaultSettle,
	}
}

// SetSettle changes the reload delay.
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Apply loads the file and publishes the preset to the target.
func (w *Watcher) Apply() error {
	f, err := preset.Load(w.path)
	if err != nil {
		return err
	}
	p, err := preset.Lookup(w.name, f)
	if err != nil {
		return fmt.Errorf("%s: %w", w.path, err)
	}
	if len(w.Overrides) > 0 {
		p = p.With(w.Overrides)
	}
	if err := preset.Apply(w.target, p); err != nil {
		return err
	}
	if w.OnApply != nil {
		w.OnApply(p)
	}
	return nil
}

// Run watches the file until ctx is cancelled. The parent directory is
// watched so that editors replacing the file by rename are seen. Reload
// errors are logged and the previous values stay in effect.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info("watching %s for preset %q", w.path, w.name)

	target := filepath.Clean(w.path)
	timer := time.NewTimer(w.settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.settle)
		case <-timer.C:
			if err := w.Apply(); err != nil {
				w.logger.Warn("preset reload failed: %v", err)
				continue
			}
			w.logger.Info("reloaded preset %q from %s", w.name, w.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error: %v", err)
		}
	}
}
