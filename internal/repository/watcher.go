package repository

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"inferd/pkg/types"
)

// settleDelay gives the filesystem time to settle after a config event
// before the model is (un)loaded.
const settleDelay = 100 * time.Millisecond

// Loader is the slice of the dispatch façade the watcher drives.
type Loader interface {
	ModelLoad(name string, params *types.ParameterMap) error
	ModelUnload(name string) error
}

// Watcher mirrors a repository directory into endpoint load/unload calls:
// a created config.pbtxt loads its model, a deleted one unloads it.
type Watcher struct {
	repository string
	loader     Loader
	logger     zerolog.Logger

	fw   *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher starts watching the repository directory and its model
// subdirectories.
func NewWatcher(repository string, loader Loader, logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(repository); err != nil {
		fw.Close()
		return nil, err
	}
	// fsnotify watches are not recursive; cover existing model dirs
	if models, err := ListModels(repository); err == nil {
		for _, m := range models {
			_ = fw.Add(filepath.Join(repository, m))
		}
	}
	w := &Watcher{
		repository: repository,
		loader:     loader,
		logger:     logger,
		fw:         fw,
		done:       make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}

// LoadExisting loads every model directory already present. Parse or load
// failures are logged and skipped.
func (w *Watcher) LoadExisting() {
	models, err := ListModels(w.repository)
	if err != nil {
		w.logger.Error().Err(err).Msg("repository scan failed")
		return
	}
	for _, model := range models {
		if err := w.loader.ModelLoad(model, nil); err != nil {
			w.logger.Info().Err(err).Str("model", model).Msg("error loading model")
		}
	}
}

func (w *Watcher) watch() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// a new model directory needs its own watch before its config lands
	if event.Op.Has(fsnotify.Create) {
		if st, err := os.Stat(event.Name); err == nil && st.IsDir() {
			_ = w.fw.Add(event.Name)
			return
		}
	}

	if filepath.Base(event.Name) != configFile {
		w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("ignoring event")
		return
	}
	model := filepath.Base(filepath.Dir(event.Name))

	switch {
	case event.Op.Has(fsnotify.Create):
		time.AfterFunc(settleDelay, func() {
			if err := w.loader.ModelLoad(model, nil); err != nil {
				w.logger.Info().Err(err).Str("model", model).Msg("error loading model")
			}
		})
	case event.Op.Has(fsnotify.Remove):
		time.AfterFunc(settleDelay, func() {
			if err := w.loader.ModelUnload(model); err != nil {
				w.logger.Info().Err(err).Str("model", model).Msg("error unloading model")
			}
		})
	}
}
