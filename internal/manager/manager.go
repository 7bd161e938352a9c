// Package manager exposes the single dispatch façade consumed by the
// protocol front-ends and the in-process client: model lifecycle, metadata
// and inference dispatch over the endpoints registry.
package manager

import (
	"context"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/endpoints"
	"inferd/internal/pool"
	"inferd/internal/repository"
	"inferd/internal/worker"
	"inferd/pkg/types"
)

// ServerName identifies the runtime in server metadata.
const ServerName = "inferd"

// Extensions advertised through server metadata.
var extensions = []string{"logging", "metrics", "grpc"}

// Config carries the construction parameters for the façade.
type Config struct {
	// RepositoryDir is the model repository root used by ModelLoad. Empty
	// disables repository resolution.
	RepositoryDir string
	// Version reported in server metadata.
	Version string
	Logger  zerolog.Logger
}

// Manager arbitrates concurrent loads/unloads and routes inference to
// worker ingress queues. It owns the shared memory pool, which is torn
// down after the last worker.
type Manager struct {
	cfg       Config
	pool      *pool.Pool
	registry  *endpoints.Registry
	logger    zerolog.Logger
	startTime time.Time
}

// New constructs the façade with a fresh pool and registry.
func New(cfg Config) *Manager {
	p := pool.New()
	return &Manager{
		cfg:       cfg,
		pool:      p,
		registry:  endpoints.New(p, cfg.Logger),
		logger:    cfg.Logger,
		startTime: time.Now(),
	}
}

// Registry exposes the endpoints registry, for tests and the watcher.
func (m *Manager) Registry() *endpoints.Registry { return m.registry }

// ServerMetadata reports the runtime's name, version and extensions.
func (m *Manager) ServerMetadata() types.ServerMetadata {
	return types.ServerMetadata{
		Name:       ServerName,
		Version:    m.cfg.Version,
		Extensions: append([]string(nil), extensions...),
	}
}

// ServerLive reports whether the server is up at all.
func (m *Manager) ServerLive() bool { return true }

// ServerReady reports whether the server can accept work.
func (m *Manager) ServerReady() bool { return true }

// ModelReady reports whether the named model's worker is running.
func (m *Manager) ModelReady(name string) bool { return m.registry.Ready(name) }

// ModelMetadata returns the declared tensors for a loaded model.
func (m *Manager) ModelMetadata(name string) (types.ModelMetadata, error) {
	meta, ok := m.registry.Metadata(name)
	if !ok {
		return types.ModelMetadata{}, ErrNotFound(name)
	}
	return meta, nil
}

// ModelList returns the names of loaded endpoints.
func (m *Manager) ModelList() []string { return m.registry.List() }

// ModelLoad loads a model from the repository: the model's config resolves
// a platform to worker parameters, which then drive the same endpoint load
// path WorkerLoad uses directly.
func (m *Manager) ModelLoad(name string, params *types.ParameterMap) error {
	if m.cfg.RepositoryDir == "" {
		return ErrRuntime("no model repository configured")
	}
	resolved, err := repository.ParseModel(m.cfg.RepositoryDir, name)
	if err != nil {
		if repository.IsFileNotFound(err) {
			return ErrNotFound(name)
		}
		if repository.IsInvalidPlatform(err) {
			return ErrInvalidArgument(err.Error())
		}
		return ErrRuntime(err.Error())
	}
	// explicit load-time parameters override the repository config
	resolved.Merge(params)
	if _, err := m.registry.Load(name, resolved); err != nil {
		return m.mapLoadError(name, err)
	}
	return nil
}

// ModelUnload decrements the model's reference count, destroying its
// worker at zero. Unloading a model that is not loaded is benign.
func (m *Manager) ModelUnload(name string) error {
	m.registry.Unload(name)
	return nil
}

// WorkerLoad loads a worker by name with direct load-time parameters and
// returns the endpoint name it was registered under.
func (m *Manager) WorkerLoad(name string, params *types.ParameterMap) (string, error) {
	if params == nil {
		params = types.NewParameterMap()
	}
	endpoint, err := m.registry.Load(name, params)
	if err != nil {
		return "", m.mapLoadError(name, err)
	}
	return endpoint, nil
}

// WorkerUnload is identical in behavior to ModelUnload and is provided for
// symmetry.
func (m *Manager) WorkerUnload(name string) error { return m.ModelUnload(name) }

// ModelInfer validates the request, resolves the endpoint and enqueues the
// request on its ingress queue, returning immediately. Completion is
// observed through the request's callback.
func (m *Manager) ModelInfer(name string, req *types.InferenceRequest) error {
	if len(req.Inputs) == 0 {
		return ErrInvalidArgument("request has no inputs")
	}
	w, ok := m.registry.Get(name)
	if !ok {
		return ErrNotFound(name)
	}
	if err := w.Submit(req); err != nil {
		if err == worker.ErrNotRunning {
			return ErrUnavailable(name)
		}
		return ErrRuntime(err.Error())
	}
	return nil
}

// ModelInferSync is the blocking form of ModelInfer: it waits for the
// request's callback and returns the response. Error responses delivered
// through the callback are returned as-is with a nil error.
func (m *Manager) ModelInferSync(ctx context.Context, name string, req *types.InferenceRequest) (*types.InferenceResponse, error) {
	done := make(chan *types.InferenceResponse, 1)
	req.SetCallback(func(resp *types.InferenceResponse) { done <- resp })
	if err := m.ModelInfer(name, req); err != nil {
		return nil, err
	}
	select {
	case resp := <-done:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// HasHardware reports whether the server has at least num devices with the
// given name.
func (m *Manager) HasHardware(name string, num int) bool {
	switch strings.ToLower(name) {
	case "cpu":
		return runtime.NumCPU() >= num
	default:
		return num <= 0
	}
}

// Uptime reports how long the façade has been serving.
func (m *Manager) Uptime() time.Duration { return time.Since(m.startTime) }

// Shutdown drives every worker through release and destroy. The pool is
// torn down last, implicitly, when the manager is dropped.
func (m *Manager) Shutdown() {
	m.registry.Shutdown()
}

func (m *Manager) mapLoadError(name string, err error) error {
	if endpoints.IsUnknownWorker(err) {
		return ErrNotFound(name)
	}
	return ErrRuntime(err.Error())
}
