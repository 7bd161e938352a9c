package worker

import (
	"fmt"
	"sort"
	"sync"

	"inferd/internal/batch"
	"inferd/internal/buffer"
	"inferd/pkg/types"
)

// Metadata is what a kernel declares at acquire time: the tensors it
// accepts and produces per request, and the allocators it can read from.
type Metadata struct {
	Inputs     []types.Tensor
	Outputs    []types.Tensor
	Allocators []buffer.Allocator
}

// Kernel is the compute step a worker owns. Compute receives a batch whose
// input buffers were laid out by the batcher and returns one response per
// request slot; a non-nil error fails the whole batch.
type Kernel interface {
	Init(params *types.ParameterMap) error
	Acquire(params *types.ParameterMap) (Metadata, error)
	Compute(b *batch.Batch) ([]types.InferenceResponse, error)
	Release() error
	Destroy()
}

// hardBatching is implemented by kernels that want batches filled to
// exactly the configured size.
type hardBatching interface {
	HardBatching() bool
}

// Factory builds a fresh kernel instance.
type Factory func() Kernel

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register installs a kernel factory under a worker name. Kernels register
// themselves at program start; a duplicate name panics.
func Register(name string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[name]; dup {
		panic(fmt.Sprintf("worker: duplicate factory %q", name))
	}
	factories[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Names returns the registered worker names, sorted.
func Names() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
