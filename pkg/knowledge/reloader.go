package knowledge

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Reloader serves a Store built from a corpus file and rebuilds it when
// the file changes. Readers always see one complete Store; a file that
// fails to load leaves the previous Store in place.
type Reloader struct {
	path    string
	opts    []Option
	log     *logrus.Logger
	current atomic.Pointer[Store]
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewReloader(path string, log *logrus.Logger, opts ...Option) (*Reloader, error) {
	path = filepath.Clean(path)

	store, err := LoadStore(path, opts...)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: editors and config management usually replace
	// the file instead of writing it in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	r := &Reloader{
		path:    path,
		opts:    opts,
		log:     log,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	r.current.Store(store)

	r.wg.Add(1)
	go r.watch()

	log.WithFields(logrus.Fields{
		"path":     path,
		"services": len(store.services),
	}).Info("Knowledge corpus loaded")

	return r, nil
}

func (r *Reloader) watch() {
	defer r.wg.Done()

	for {
		select {
		case <-r.done:
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			r.reload()
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.WithFields(logrus.Fields{
				"path":  r.path,
				"error": err.Error(),
			}).Warn("Knowledge corpus watcher error")
		}
	}
}

func (r *Reloader) reload() {
	store, err := LoadStore(r.path, r.opts...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"path":  r.path,
			"error": err.Error(),
		}).Error("Failed to reload knowledge corpus, keeping previous version")
		return
	}

	r.current.Store(store)

	r.log.WithFields(logrus.Fields{
		"path":     r.path,
		"services": len(store.services),
	}).Info("Knowledge corpus reloaded")
}

// Current returns the Store currently being served.
func (r *Reloader) Current() *Store {
	return r.current.Load()
}

func (r *Reloader) Close() error {
	close(r.done)
	err := r.watcher.Close()
	r.wg.Wait()
	return err
}

func (r *Reloader) GetServiceInfo(key string) (ServiceRecord, bool) {
	return r.Current().GetServiceInfo(key)
}

func (r *Reloader) GetGeneralInfo(key string) (GeneralInfo, bool) {
	return r.Current().GetGeneralInfo(key)
}

func (r *Reloader) Services() []ServiceRecord {
	return r.Current().Services()
}

func (r *Reloader) SearchKnowledgeBase(query string, limit int) []SearchResult {
	return r.Current().SearchKnowledgeBase(query, limit)
}
