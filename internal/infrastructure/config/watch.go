package config

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Watcher reloads the configuration file on change and notifies listeners.
// Only settings that are safe to change at runtime should be read from the
// reloaded config (log level, rate limits).
type Watcher struct {
	mu        sync.RWMutex
	v         *viper.Viper
	current   *Config
	listeners []func(*Config)
	logger    *zap.Logger
}

// LoadWatched loads the configuration and returns a watcher that keeps it
// current. Without a config file the watcher never fires.
func LoadWatched(configPath string, logger *zap.Logger) (*Watcher, error) {
	cfg, v, err := load(configPath)
	if err != nil {
		return nil, err
	}
	return &Watcher{v: v, current: cfg, logger: logger.Named("config")}, nil
}

// Config returns the latest valid configuration.
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// UseLogger replaces the logger given to LoadWatched. The application logger
// is built from the loaded configuration, so it only exists afterwards.
func (w *Watcher) UseLogger(logger *zap.Logger) {
	w.mu.Lock()
	w.logger = logger.Named("config")
	w.mu.Unlock()
}

// OnChange registers fn to run after every successful reload.
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	w.listeners = append(w.listeners, fn)
	w.mu.Unlock()
}

// Start begins watching the config file, if one was read.
func (w *Watcher) Start() {
	if w.v.ConfigFileUsed() == "" {
		return
	}
	w.v.OnConfigChange(func(e fsnotify.Event) {
		w.reload(e)
	})
	w.v.WatchConfig()
	w.logger.Info("watching configuration file", zap.String("file", w.v.ConfigFileUsed()))
}

func (w *Watcher) reload(e fsnotify.Event) {
	if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
		return
	}
	cfg, err := decode(w.v)
	if err != nil {
		w.logger.Warn("ignoring invalid configuration change", zap.String("file", e.Name), zap.Error(err))
		return
	}

	w.mu.Lock()
	w.current = cfg
	listeners := append([]func(*Config){}, w.listeners...)
	w.mu.Unlock()

	w.logger.Info("configuration reloaded", zap.String("file", e.Name))
	for _, fn := range listeners {
		fn(cfg)
	}
}
