package game

import (
	"os"
	"path/filepath"
	"time"
)

// ProfileWatcher polls the machines directory for modified profiles and
// triggers a callback on change. Polling keeps the loader free of platform
// notification APIs; profile edits are rare and a few seconds of latency is
// acceptable.
type ProfileWatcher struct {
	dir       string
	interval  time.Duration
	onChange  func(path string)
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewProfileWatcher watches every .yaml file under dir.
func NewProfileWatcher(dir string, interval time.Duration, onChange func(string)) *ProfileWatcher {
	return &ProfileWatcher{
		dir:       dir,
		interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *ProfileWatcher) Start() {
	ticker := time.NewTicker(w.interval)
	go func() {
		defer ticker.Stop()
		// prime the mtime cache so startup does not fire callbacks
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *ProfileWatcher) Stop() {
	close(w.stopCh)
}

func (w *ProfileWatcher) scan(prime bool) {
	paths, err := filepath.Glob(filepath.Join(w.dir, "*.yaml"))
	if err != nil {
		return
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		last, seen := w.lastMTime[path]
		w.lastMTime[path] = info.ModTime()
		if prime {
			continue
		}
		if !seen || info.ModTime().After(last) {
			if w.onChange != nil {
				w.onChange(path)
			}
		}
	}
}
