// Package pool implements the multi-allocator memory pool that vends
// buffers sized to a tensor × batch-count pair and reclaims them, keeping
// per-request allocation off the hot path.
package pool

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"inferd/internal/buffer"
	"inferd/pkg/types"
)

// ErrNoAllocator is returned when none of the allowed allocators is
// supported by the pool. Callers surface it as an invalid-argument failure.
var ErrNoAllocator = errors.New("no supported allocator in the allowed set")

// perBucketHighWater caps how many returned buffers a single bucket keeps.
// Buffers returned above the mark are released to the allocator.
const perBucketHighWater = 32

type bucketKey struct {
	allocator buffer.Allocator
	size      int // rounded-up byte capacity
}

type bucket struct {
	mu   sync.Mutex
	free []*buffer.Buffer
}

// Pool is shared across all workers and safe for concurrent use. Free lists
// are keyed by (allocator, power-of-two size bucket) and serialized
// per-bucket.
type Pool struct {
	mu      sync.Mutex
	buckets map[bucketKey]*bucket
}

// New returns an empty pool supporting the cpu and vart allocators.
func New() *Pool {
	return &Pool{buckets: make(map[bucketKey]*bucket)}
}

func (p *Pool) supported(a buffer.Allocator) bool {
	return a == buffer.Cpu || a == buffer.Vart
}

func (p *Pool) bucket(key bucketKey) *bucket {
	p.mu.Lock()
	defer p.mu.Unlock()
	b := p.buckets[key]
	if b == nil {
		b = &bucket{}
		p.buckets[key] = b
	}
	return b
}

// Get returns a buffer whose capacity is at least byteSize(tensor) ×
// batchSize, produced by the first allocator in allowed that the pool
// supports. It never blocks awaiting a returned buffer: when the free list
// is empty a fresh buffer is allocated.
func (p *Pool) Get(allowed []buffer.Allocator, tensor types.Tensor, batchSize int) (*buffer.Buffer, error) {
	var chosen buffer.Allocator
	found := false
	for _, a := range allowed {
		if p.supported(a) {
			chosen = a
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("tensor %s: %w", tensor.Name, ErrNoAllocator)
	}

	need := int(tensor.ByteSize()) * batchSize
	size := roundPow2(need)
	bkt := p.bucket(bucketKey{allocator: chosen, size: size})

	// Strided buffers can carry a capacity below the bucket's rounded size,
	// so take the newest entry that actually fits.
	elemSize := tensor.Datatype.Size()
	bkt.mu.Lock()
	for i := len(bkt.free) - 1; i >= 0; i-- {
		buf := bkt.free[i]
		if buf.Capacity() >= need && buf.Compatible(batchSize, tensor.Shape, elemSize) {
			bkt.free = append(bkt.free[:i], bkt.free[i+1:]...)
			bkt.mu.Unlock()
			buf.Rebind(elemSize)
			return buf, nil
		}
	}
	bkt.mu.Unlock()

	switch chosen {
	case buffer.Vart:
		return buffer.NewVart(batchSize, tensor.Shape, tensor.Datatype.Size()), nil
	default:
		return buffer.NewCpu(size, tensor.Datatype.Size()), nil
	}
}

// Put returns a buffer to its free list, making it eligible for reuse. The
// pool does not observe the buffer's contents between Put and the next Get.
// Buckets above their high-water mark release the buffer instead.
func (p *Pool) Put(buf *buffer.Buffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	key := bucketKey{allocator: buf.Allocator(), size: roundPow2(buf.Capacity())}
	bkt := p.bucket(key)
	bkt.mu.Lock()
	if len(bkt.free) < perBucketHighWater {
		bkt.free = append(bkt.free, buf)
	}
	bkt.mu.Unlock()
}

// roundPow2 rounds n up to the next power of two, with a floor of one byte.
func roundPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
