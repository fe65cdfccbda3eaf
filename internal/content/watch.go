package content

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/wikiview/internal/wiki"
)

// Watcher reports pages whose override file changed on disk.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan wiki.Page
	errs    chan error
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// Watch starts watching dir for page file changes.
func Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{
		fs:      fw,
		changes: make(chan wiki.Page, 10),
		errs:    make(chan error, 1),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers the page of every relevant write, create, rename or
// remove. It is closed when the watcher stops.
func (w *Watcher) Changes() <-chan wiki.Page { return w.changes }

// Errors delivers watcher errors.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.quit)
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)
	defer close(w.changes)
	for {
		select {
		case <-w.quit:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			page, ok := pageForFile(event.Name)
			if !ok {
				continue
			}
			select {
			case w.changes <- page:
			case <-w.quit:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func pageForFile(name string) (wiki.Page, bool) {
	base := filepath.Base(name)
	if !strings.EqualFold(filepath.Ext(base), ".md") {
		return 0, false
	}
	page, err := wiki.ParsePage(strings.TrimSuffix(base, filepath.Ext(base)))
	if err != nil {
		return 0, false
	}
	return page, true
}
