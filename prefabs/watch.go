package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Reload reports a changed prefab file. Actor is set when the file was
// an actor spec that parsed and validated; Err is set when it did not.
// Script changes carry only Name.
type Reload struct {
	Name  string
	Actor *ActorSpec
	Err   error
}

// Watcher re-reads actor specs as they change on disk and hands the
// results to the game loop over Reloads.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Reloads  chan Reload
	Errors   chan error
	closeCh  chan struct{}
	once     sync.Once
	debounce time.Duration
	load     func(name string) (*ActorSpec, error)
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Reloads:  make(chan Reload, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		debounce: defaultDebounce,
		load:     LoadActorSpec,
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Reloads)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now

			reload, ok := w.reload(event.Name)
			if !ok {
				continue
			}
			select {
			case w.Reloads <- reload:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload(path string) (Reload, bool) {
	name := filepath.Base(path)
	switch {
	case isSpecFile(path):
		spec, err := w.load(name)
		return Reload{Name: name, Actor: spec, Err: err}, true
	case isScriptFile(path):
		return Reload{Name: name}, true
	}
	return Reload{}, false
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
