package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports prefab file changes for live tuning reloads. Events carry
// the prefab-relative name ("tuning.yaml"). Consumers drain the channel at
// their own pace; bursts from editors are debounced.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given directories for YAML and tengo changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	// editors fire several write events per save; collapse them
	lastSent := make(map[string]time.Time)
	const debounce = 200 * time.Millisecond

	for {
		select {
		case <-w.closeCh:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.ToSlash(ev.Name)
			if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".tengo") {
				continue
			}
			base := filepath.Base(name)
			if strings.HasSuffix(base, ".tengo") {
				base = "scripts/" + base
			}
			now := time.Now()
			if t, ok := lastSent[base]; ok && now.Sub(t) < debounce {
				continue
			}
			lastSent[base] = now
			select {
			case w.Events <- base:
			default:
			}
		}
	}
}
