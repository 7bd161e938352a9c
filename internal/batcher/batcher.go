// Package batcher transforms the unbounded stream of inbound requests for a
// single worker into a stream of bounded batches, amortizing
// kernel-invocation cost.
package batcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/batch"
	"inferd/internal/buffer"
	"inferd/internal/pool"
	"inferd/pkg/types"
)

// Kind selects the batching discipline.
type Kind uint8

const (
	// Soft emits a batch when maxBatchSize requests are accumulated or the
	// timeout has elapsed since the first request entered the batch.
	Soft Kind = iota
	// Hard fills batches to exactly maxBatchSize, except possibly the last
	// one before quiescence.
	Hard
)

// Config holds the per-worker batching parameters. The zero value means
// pass-through: batches of one, no timeout.
type Config struct {
	MaxBatchSize int
	Timeout      time.Duration
	QueueDepth   int
}

type entry struct {
	req     *types.InferenceRequest
	trace   *batch.Trace
	arrived time.Time
}

// Batcher pulls requests from its ingress queue, groups them into batches
// subject to the batch-size and timeout constraints, lays request tensors
// into pooled buffers and hands each batch to the worker's batch queue.
// Requests that reach the batcher are delivered to the worker in arrival
// order.
type Batcher struct {
	kind       Kind
	cfg        Config
	inputs     []types.Tensor
	outputs    []types.Tensor
	allocators []buffer.Allocator
	pool       *pool.Pool

	ingress chan entry
	out     chan *batch.Batch
	done    chan struct{}
	logger  zerolog.Logger
}

// New builds a batcher for a worker with the given declared tensors and
// accepted allocators. Start must be called before requests are enqueued.
func New(kind Kind, cfg Config, inputs, outputs []types.Tensor, allocators []buffer.Allocator, p *pool.Pool, logger zerolog.Logger) *Batcher {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = 1
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = 128
	}
	return &Batcher{
		kind:       kind,
		cfg:        cfg,
		inputs:     inputs,
		outputs:    outputs,
		allocators: allocators,
		pool:       p,
		ingress:    make(chan entry, cfg.QueueDepth),
		out:        make(chan *batch.Batch, 1),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Batches returns the bounded queue the worker consumes. It is closed after
// shutdown once any partial batch has been flushed.
func (b *Batcher) Batches() <-chan *batch.Batch { return b.out }

// Enqueue adds a request to the ingress stream, stamping its arrival time
// and starting its trace.
func (b *Batcher) Enqueue(req *types.InferenceRequest) {
	now := time.Now()
	trace := batch.NewTrace(req.ID)
	trace.StartSpan("ingress", now)
	b.ingress <- entry{req: req, trace: trace, arrived: now}
}

// Shutdown stops intake. The run loop flushes any partial batch, closes the
// batch queue and exits; Shutdown returns once that has happened. Enqueue
// must not be called after Shutdown.
func (b *Batcher) Shutdown() {
	close(b.ingress)
	<-b.done
}

// Start spawns the run loop.
func (b *Batcher) Start() {
	go b.run()
}

func (b *Batcher) run() {
	defer close(b.done)
	defer close(b.out)

	for {
		first, ok := <-b.ingress
		if !ok {
			return
		}
		bt, more := b.assemble(first)
		if bt != nil {
			batchSizes.Observe(float64(bt.Size()))
			b.out <- bt
		}
		if !more {
			return
		}
	}
}

// assemble forms one batch starting from the first arrival. It returns a nil
// batch when every candidate request failed layout, and ok=false when the
// ingress stream closed (after flushing the partial batch).
func (b *Batcher) assemble(first entry) (*batch.Batch, bool) {
	n := b.cfg.MaxBatchSize
	bt := &batch.Batch{}

	inputs, outputs, err := b.acquireBuffers(n)
	if err != nil {
		// The batch cannot exist; every request routed to this attempt
		// fails. Only the first has been routed at this point.
		b.logger.Error().Err(err).Msg("buffer acquisition failed")
		first.req.RunCallbackError(err.Error())
		return nil, true
	}
	bt.SetBuffers(inputs, outputs)

	b.lay(bt, first)

	var deadline <-chan time.Time
	if b.kind == Soft && b.cfg.Timeout > 0 {
		timer := time.NewTimer(b.cfg.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

collect:
	for bt.Size() < n {
		if b.kind == Hard {
			// fill to exactly n, or flush at quiescence
			e, ok := <-b.ingress
			if !ok {
				return b.finish(bt), false
			}
			b.lay(bt, e)
			continue
		}
		if deadline == nil {
			// pass-through: drain whatever is already queued, nothing more
			select {
			case e, ok := <-b.ingress:
				if !ok {
					return b.finish(bt), false
				}
				b.lay(bt, e)
			default:
				break collect
			}
			continue
		}
		select {
		case e, ok := <-b.ingress:
			if !ok {
				return b.finish(bt), false
			}
			b.lay(bt, e)
		case <-deadline:
			break collect
		}
	}
	return b.finish(bt), true
}

// finish releases the buffers of an empty batch back to the pool.
func (b *Batcher) finish(bt *batch.Batch) *batch.Batch {
	if bt == nil || !bt.Empty() {
		return bt
	}
	for _, buf := range bt.TakeBuffers() {
		b.pool.Put(buf)
	}
	return nil
}

// lay copies the request's input tensors into the next batch slot. A request
// that fails validation is completed with an error through its callback and
// never blocks the remainder of the batch.
func (b *Batcher) lay(bt *batch.Batch, e entry) {
	slot := bt.Size()
	if err := b.validate(e.req); err != nil {
		requestsRejected.Inc()
		e.req.RunCallbackError(err.Error())
		return
	}
	for i, declared := range b.inputs {
		in := e.req.Inputs[i]
		offset := int64(slot) * declared.Elements()
		dst := bt.InputBuffer(i).Data(offset)
		copy(dst, in.Data)
	}
	e.trace.StartSpan("batch", time.Now())
	bt.Append(e.req, e.trace, e.arrived)
}

func (b *Batcher) validate(req *types.InferenceRequest) error {
	if len(req.Inputs) == 0 {
		return fmt.Errorf("invalid argument: request has no inputs")
	}
	if len(req.Inputs) != len(b.inputs) {
		return fmt.Errorf("invalid argument: request has %d inputs, worker declares %d", len(req.Inputs), len(b.inputs))
	}
	for i, declared := range b.inputs {
		in := req.Inputs[i]
		if len(in.Shape) != len(declared.Shape) {
			return fmt.Errorf("invalid argument: input %s has rank %d, declared rank is %d", in.Name, len(in.Shape), len(declared.Shape))
		}
		if in.Elements() > declared.Elements() {
			return fmt.Errorf("invalid argument: input %s has %d elements, worker capacity is %d", in.Name, in.Elements(), declared.Elements())
		}
	}
	return nil
}

// acquireBuffers draws one input buffer per declared input tensor and one
// output buffer per declared output tensor, each sized for n requests.
func (b *Batcher) acquireBuffers(n int) (inputs, outputs []*buffer.Buffer, err error) {
	release := func(bufs []*buffer.Buffer) {
		for _, buf := range bufs {
			b.pool.Put(buf)
		}
	}
	for _, t := range b.inputs {
		buf, err := b.pool.Get(b.allocators, t, n)
		if err != nil {
			release(inputs)
			return nil, nil, err
		}
		inputs = append(inputs, buf)
	}
	for _, t := range b.outputs {
		buf, err := b.pool.Get(b.allocators, t, n)
		if err != nil {
			release(inputs)
			release(outputs)
			return nil, nil, err
		}
		outputs = append(outputs, buf)
	}
	return inputs, outputs, nil
}
