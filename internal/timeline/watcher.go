package timeline

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/divescroll/internal/logger"
)

// Watcher reloads a snapshot file whenever it is written and hands each
// successfully decoded sequence to a callback. The callback runs on the
// watcher goroutine; it must not touch frame state directly.
type Watcher struct {
	path     string
	onReload func(*Sequence)
	fw       *fsnotify.Watcher
	log      *zap.Logger
	done     chan struct{}
	close    sync.Once
}

// Watch starts watching path. The parent directory is watched so that
// editors that replace the file on save are seen too.
func Watch(path string, onReload func(*Sequence), log *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		onReload: onReload,
		fw:       fw,
		log:      logger.OrNop(log),
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("snapshot watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	seq, err := LoadFile(w.path, 0)
	if err != nil {
		// Partial writes decode as malformed; wait for the next event.
		w.log.Debug("snapshot reload skipped", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.log.Info("snapshot reloaded", zap.String("path", w.path))
	w.onReload(seq)
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.close.Do(func() {
		err = w.fw.Close()
		<-w.done
	})
	return err
}
