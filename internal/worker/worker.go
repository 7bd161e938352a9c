// Package worker implements the state machine that owns a model kernel: it
// pulls batches from its batcher, invokes the kernel and completes each
// request exactly once.
package worker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/batch"
	"inferd/internal/batcher"
	"inferd/internal/pool"
	"inferd/pkg/types"
)

// State is the lifecycle state of a worker. States only advance.
type State int32

const (
	Unloaded State = iota
	Initialized
	Acquired
	Running
	Released
	Destroyed
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Initialized:
		return "initialized"
	case Acquired:
		return "acquired"
	case Running:
		return "running"
	case Released:
		return "released"
	case Destroyed:
		return "destroyed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrNotRunning is returned by Submit when the worker is not in Running.
var ErrNotRunning = errors.New("worker is not running")

// Worker owns one kernel plus the batcher feeding it. Its lifecycle is
// init → acquire → run → release → destroy; any transition error parks it
// in Failed, from which only Destroy is reachable.
type Worker struct {
	name   string
	kernel Kernel
	pool   *pool.Pool
	logger zerolog.Logger

	mu        sync.RWMutex
	state     State
	batchSize int
	timeout   time.Duration
	meta      Metadata

	batcher *batcher.Batcher
	done    chan struct{}
}

// New returns a worker in Unloaded owning the given kernel.
func New(name string, kernel Kernel, p *pool.Pool, logger zerolog.Logger) *Worker {
	return &Worker{
		name:   name,
		kernel: kernel,
		pool:   p,
		logger: logger.With().Str("worker", name).Logger(),
		state:  Unloaded,
		done:   make(chan struct{}),
	}
}

// Name returns the worker's name.
func (w *Worker) Name() string { return w.name }

// State returns the current lifecycle state.
func (w *Worker) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Metadata returns the tensors and allocators declared at acquire time.
func (w *Worker) Metadata() Metadata {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.meta
}

// BatchSize returns the configured maximum batch size.
func (w *Worker) BatchSize() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.batchSize
}

func (w *Worker) advance(from, to State) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != from {
		w.state = Failed
		return fmt.Errorf("worker %s: cannot advance to %s from %s", w.name, to, w.state)
	}
	w.state = to
	return nil
}

// Init sets the batch size and static hints from load-time parameters.
func (w *Worker) Init(params *types.ParameterMap) error {
	batchSize := 1
	if params.Has("batch_size") {
		batchSize = params.GetInt("batch_size")
		if batchSize <= 0 {
			w.fail()
			return fmt.Errorf("worker %s: malformed batch_size %d", w.name, batchSize)
		}
	}
	var timeout time.Duration
	if params.Has("timeout_ms") {
		ms := params.GetInt("timeout_ms")
		if ms < 0 {
			w.fail()
			return fmt.Errorf("worker %s: malformed timeout_ms %d", w.name, ms)
		}
		timeout = time.Duration(ms) * time.Millisecond
	}
	if err := w.kernel.Init(params); err != nil {
		w.fail()
		return err
	}
	w.mu.Lock()
	w.batchSize = batchSize
	w.timeout = timeout
	w.mu.Unlock()
	return w.advance(Unloaded, Initialized)
}

// Acquire declares the kernel's tensor metadata and allocators, binds the
// ingress queue and spawns the batcher.
func (w *Worker) Acquire(params *types.ParameterMap) error {
	meta, err := w.kernel.Acquire(params)
	if err != nil {
		w.fail()
		return err
	}
	kind := batcher.Soft
	if hb, ok := w.kernel.(hardBatching); ok && hb.HardBatching() {
		kind = batcher.Hard
	}
	w.mu.Lock()
	w.meta = meta
	w.batcher = batcher.New(kind, batcher.Config{
		MaxBatchSize: w.batchSize,
		Timeout:      w.timeout,
	}, meta.Inputs, meta.Outputs, meta.Allocators, w.pool, w.logger)
	w.mu.Unlock()
	return w.advance(Initialized, Acquired)
}

// Run starts the batcher and the run loop and moves the worker to Running.
func (w *Worker) Run() error {
	if err := w.advance(Acquired, Running); err != nil {
		return err
	}
	w.batcher.Start()
	go w.runLoop()
	return nil
}

// Submit enqueues a request on the worker's ingress queue. The request's
// callback observes completion.
func (w *Worker) Submit(req *types.InferenceRequest) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.state != Running {
		return ErrNotRunning
	}
	w.batcher.Enqueue(req)
	return nil
}

// Release stops intake and drains: the batcher flushes its partial batch
// and the run loop completes remaining batches normally before exiting.
func (w *Worker) Release() error {
	w.mu.Lock()
	if w.state != Running {
		from := w.state
		w.state = Failed
		w.mu.Unlock()
		return fmt.Errorf("worker %s: cannot release from %s", w.name, from)
	}
	w.state = Released
	b := w.batcher
	w.mu.Unlock()

	b.Shutdown()
	<-w.done
	if err := w.kernel.Release(); err != nil {
		w.logger.Error().Err(err).Msg("kernel release failed")
	}
	return nil
}

// Destroy deallocates kernel resources. After Destroy the worker is
// terminal and its endpoint is removed from the registry.
func (w *Worker) Destroy() {
	w.kernel.Destroy()
	w.mu.Lock()
	w.state = Destroyed
	w.mu.Unlock()
}

func (w *Worker) fail() {
	w.mu.Lock()
	w.state = Failed
	w.mu.Unlock()
}

func (w *Worker) runLoop() {
	defer close(w.done)
	for bt := range w.batcher.Batches() {
		w.dispatch(bt)
	}
	w.logger.Debug().Msg("run loop ending")
}

func (w *Worker) dispatch(bt *batch.Batch) {
	ingressBatches.Inc()
	responses, err := w.kernel.Compute(bt)
	for i, req := range bt.Requests() {
		bt.Trace(i).EndSpan(time.Now())
		switch {
		case err != nil:
			req.RunCallbackError(err.Error())
		case i >= len(responses):
			req.RunCallbackError("kernel produced no response for request")
		case responses[i].Error != "":
			req.RunCallback(&responses[i])
		default:
			responses[i].ID = req.ID
			req.RunCallback(&responses[i])
		}
		egressRequests.Inc()
		requestLatency.Observe(time.Since(bt.Time(i)).Seconds())
	}
	for _, buf := range bt.TakeBuffers() {
		w.pool.Put(buf)
	}
}
