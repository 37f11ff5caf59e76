package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"github.com/Faultbox/locomotion/internal/logger"
)

// settleDelay lets an editor finish writing before the file is read.
const settleDelay = 50 * time.Millisecond

// Watcher reloads a config file whenever its content changes. Editors that
// replace the file instead of writing it are handled by watching the
// directory. Saves that leave the bytes unchanged are skipped.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Config
	log     *zap.Logger

	lastHash uint64
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewWatcher starts watching path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Config, 1),
		log:     logger.Named("config"),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	if data, err := os.ReadFile(abs); err == nil {
		w.lastHash = xxh3.Hash(data)
	}

	go w.run()
	return w, nil
}

// Updates delivers each successfully reloaded config. Only the newest
// pending config is kept. The channel is closed when the watcher stops.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// Watch runs until ctx is done, then closes the watcher.
func (w *Watcher) Watch(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-w.done:
	}
	_ = w.Close()
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.updates)

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(settleDelay)

		case <-pending:
			pending = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))

		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Warn("reading config", zap.String("path", w.path), zap.Error(err))
		return
	}

	hash := xxh3.Hash(data)
	if hash == w.lastHash {
		w.log.Debug("config unchanged", zap.String("path", w.path))
		return
	}

	cfg := Default()
	if err := decode(cfg, data); err != nil {
		w.log.Warn("parsing config", zap.String("path", w.path), zap.Error(err))
		return
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		w.log.Warn("rejected config", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.lastHash = hash

	// Replace a config the consumer has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.log.Info("config reloaded", zap.String("path", w.path))
}
