// Package endpoints maps canonical model names to live worker handles and
// tracks their load/unload lifecycle via reference counts.
package endpoints

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"inferd/internal/pool"
	"inferd/internal/worker"
	"inferd/pkg/types"
)

// ErrUnknownWorker is returned when no kernel factory exists for the
// requested worker name.
var ErrUnknownWorker = errors.New("unknown worker")

// IsUnknownWorker reports whether err indicates a missing kernel factory.
func IsUnknownWorker(err error) bool { return errors.Is(err, ErrUnknownWorker) }

// Endpoint is the registry entry for a loaded model.
type Endpoint struct {
	name       string
	workerName string
	worker     *worker.Worker
	refs       int
}

// Worker returns the endpoint's worker handle.
func (e *Endpoint) Worker() *worker.Worker { return e.worker }

// Registry is shared across the protocol front-ends. Load/unload for the
// same name are serialized; different names proceed in parallel.
type Registry struct {
	pool   *pool.Pool
	logger zerolog.Logger

	mu        sync.Mutex
	endpoints map[string]*Endpoint
	locks     map[string]*sync.Mutex
}

// New returns an empty registry drawing buffers from the given pool.
func New(p *pool.Pool, logger zerolog.Logger) *Registry {
	return &Registry{
		pool:      p,
		logger:    logger,
		endpoints: make(map[string]*Endpoint),
		locks:     make(map[string]*sync.Mutex),
	}
}

// Canonical lower-cases a model name.
func Canonical(name string) string { return strings.ToLower(name) }

func (r *Registry) nameLock(name string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.locks[name]
	if l == nil {
		l = &sync.Mutex{}
		r.locks[name] = l
	}
	return l
}

// Load returns the endpoint name for the model, loading it on first use.
// If the name is already present its reference count is incremented and
// the existing endpoint is returned; concurrent loads of the same name
// yield exactly one worker instantiation.
func (r *Registry) Load(name string, params *types.ParameterMap) (string, error) {
	name = Canonical(name)
	lock := r.nameLock(name)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	if ep := r.endpoints[name]; ep != nil {
		ep.refs++
		r.mu.Unlock()
		return name, nil
	}
	r.mu.Unlock()

	workerName := name
	if params.Has("worker") {
		workerName = params.GetString("worker")
	}
	factory, ok := worker.Lookup(workerName)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownWorker, workerName)
	}

	w := worker.New(name, factory(), r.pool, r.logger)
	if err := w.Init(params); err != nil {
		return "", err
	}
	if err := w.Acquire(params); err != nil {
		return "", err
	}
	if err := w.Run(); err != nil {
		return "", err
	}

	r.mu.Lock()
	r.endpoints[name] = &Endpoint{name: name, workerName: workerName, worker: w, refs: 1}
	r.mu.Unlock()
	r.logger.Info().Str("endpoint", name).Str("worker", workerName).Msg("endpoint loaded")
	return name, nil
}

// Unload decrements the reference count and, at zero, drives the worker
// through release and destroy and removes the endpoint. Unloading a name
// that is not present is a no-op.
func (r *Registry) Unload(name string) {
	name = Canonical(name)
	lock := r.nameLock(name)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	ep := r.endpoints[name]
	if ep == nil {
		r.mu.Unlock()
		return
	}
	ep.refs--
	if ep.refs > 0 {
		r.mu.Unlock()
		return
	}
	delete(r.endpoints, name)
	r.mu.Unlock()

	if err := ep.worker.Release(); err != nil {
		r.logger.Error().Err(err).Str("endpoint", name).Msg("release failed")
	}
	ep.worker.Destroy()
	r.logger.Info().Str("endpoint", name).Msg("endpoint unloaded")
}

// Get returns the worker for a loaded endpoint.
func (r *Registry) Get(name string) (*worker.Worker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ep := r.endpoints[Canonical(name)]
	if ep == nil {
		return nil, false
	}
	return ep.worker, true
}

// Refs returns the current reference count for a loaded endpoint.
func (r *Registry) Refs(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ep := r.endpoints[Canonical(name)]
	if ep == nil {
		return 0
	}
	return ep.refs
}

// Ready reports whether the named endpoint exists and its worker is
// running.
func (r *Registry) Ready(name string) bool {
	w, ok := r.Get(name)
	return ok && w.State() == worker.Running
}

// Metadata returns the declared tensors for a loaded endpoint.
func (r *Registry) Metadata(name string) (types.ModelMetadata, bool) {
	r.mu.Lock()
	ep := r.endpoints[Canonical(name)]
	r.mu.Unlock()
	if ep == nil {
		return types.ModelMetadata{}, false
	}
	meta := ep.worker.Metadata()
	return types.ModelMetadata{
		Name:     ep.name,
		Versions: []string{"1"},
		Platform: ep.workerName,
		Inputs:   meta.Inputs,
		Outputs:  meta.Outputs,
		Ready:    ep.worker.State() == worker.Running,
	}, true
}

// List returns the names of loaded endpoints, sorted.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.endpoints))
	for n := range r.endpoints {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Shutdown drives every endpoint to destroyed regardless of reference
// counts. Used at server teardown, before the pool is released.
func (r *Registry) Shutdown() {
	for _, name := range r.List() {
		r.mu.Lock()
		ep := r.endpoints[name]
		delete(r.endpoints, name)
		r.mu.Unlock()
		if ep == nil {
			continue
		}
		if err := ep.worker.Release(); err != nil {
			r.logger.Error().Err(err).Str("endpoint", name).Msg("release failed")
		}
		ep.worker.Destroy()
	}
}
