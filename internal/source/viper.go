package source

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

// ViperProvider serves a settings file (JSON, YAML, TOML or anything else
// viper can decode) as a Provider.
//
// Each read of the file goes into a fresh viper instance which is then
// swapped in atomically, so readers never see a half-loaded file. A read that
// fails leaves the previous values in place and does not notify watchers.
type ViperProvider struct {
	path     string
	realPath string
	current  atomic.Pointer[viper.Viper]
	signal   Signal
	logger   *logger.Logger

	// reloadMu orders reads so an older read never replaces a newer one.
	reloadMu sync.Mutex

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// OpenFile reads the settings file at path. Watching for changes is started
// separately with StartWatching.
func OpenFile(path string, log *logger.Logger) (*ViperProvider, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving settings file path: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	p := &ViperProvider{
		path:   abs,
		logger: log.WithComponent("settings-file"),
	}
	p.realPath, _ = filepath.EvalSymlinks(abs)

	v, err := p.read()
	if err != nil {
		return nil, err
	}
	p.current.Store(v)

	return p, nil
}

// Path returns the absolute path of the settings file.
func (p *ViperProvider) Path() string {
	return p.path
}

// Get implements Provider.
func (p *ViperProvider) Get(key string) string {
	return p.current.Load().GetString(viperKey(key))
}

// Section implements Provider.
func (p *ViperProvider) Section(path string) Section {
	return newSection(path, p.Get)
}

// Watch implements Provider. Tokens fire after every successful re-read of
// the file.
func (p *ViperProvider) Watch(string) ChangeToken {
	return p.signal.Token()
}

// Reload re-reads the file and notifies watchers. Concurrent calls run one
// at a time.
func (p *ViperProvider) Reload() error {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	v, err := p.read()
	if err != nil {
		return err
	}

	p.current.Store(v)
	p.signal.Fire()

	return nil
}

// StartWatching reloads the file whenever it changes on disk. It watches the
// parent directory so that editors replacing the file and symlink swaps
// (e.g. mounted Kubernetes ConfigMaps) are noticed too. Calling it again
// while already watching is a no-op.
func (p *ViperProvider) StartWatching() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("error watching %s: %w", filepath.Dir(p.path), err)
	}

	p.watcher = w
	p.done = make(chan struct{})
	go p.watchLoop(w, p.done)

	p.logger.Info().Str("path", p.path).Msg("watching settings file for changes")
	return nil
}

// Close stops watching. It is safe to call more than once.
func (p *ViperProvider) Close() error {
	p.mu.Lock()
	w, done := p.watcher, p.done
	p.watcher, p.done = nil, nil
	p.mu.Unlock()

	if w == nil {
		return nil
	}

	err := w.Close()
	<-done

	return err
}

func (p *ViperProvider) watchLoop(w *fsnotify.Watcher, done chan struct{}) {
	defer close(done)

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !p.affects(event) {
				continue
			}

			p.logger.Debug().Str("op", event.Op.String()).Msg("settings file changed")
			if err := p.Reload(); err != nil {
				p.logger.Error().Err(err).Msg("error reloading settings file, keeping previous values")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			p.logger.Error().Err(err).Msg("settings file watcher error")
		}
	}
}

// affects reports whether event concerns the settings file. Only called from
// the watch goroutine, which owns realPath after StartWatching.
func (p *ViperProvider) affects(event fsnotify.Event) bool {
	realPath, _ := filepath.EvalSymlinks(p.path)
	if realPath != "" && realPath != p.realPath {
		p.realPath = realPath
		return true
	}

	if filepath.Clean(event.Name) != p.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (p *ViperProvider) read() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(p.path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading settings file %s: %w", p.path, err)
	}

	return v, nil
}

// viperKey maps "ElasticApm:LogLevel" to viper's "elasticapm.loglevel".
func viperKey(key string) string {
	return strings.ReplaceAll(strings.Trim(key, KeyDelimiter), KeyDelimiter, ".")
}
