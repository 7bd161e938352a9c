// Package batch defines the Batch: the unit the batcher produces and pushes
// to a worker. It bundles the requests, the shared input/output buffers they
// run against, and per-request observation metadata.
package batch

import (
	"time"

	"inferd/internal/buffer"
	"inferd/pkg/types"
)

// Batch holds up to maxBatchSize requests plus the pooled buffers their
// tensor data was laid into. Slot i of every buffer corresponds to request i.
type Batch struct {
	requests []*types.InferenceRequest
	inputs   []*buffer.Buffer
	outputs  []*buffer.Buffer
	traces   []*Trace
	times    []time.Time
}

// Append adds a request together with its trace and ingress timestamp. The
// three slices are appended in one call so they can never diverge.
func (b *Batch) Append(req *types.InferenceRequest, trace *Trace, ingress time.Time) {
	b.requests = append(b.requests, req)
	b.traces = append(b.traces, trace)
	b.times = append(b.times, ingress)
}

// SetBuffers installs the pooled input and output buffers for this batch.
func (b *Batch) SetBuffers(inputs, outputs []*buffer.Buffer) {
	b.inputs = inputs
	b.outputs = outputs
}

// Request returns the request in slot i.
func (b *Batch) Request(i int) *types.InferenceRequest { return b.requests[i] }

// Requests returns all requests in slot order.
func (b *Batch) Requests() []*types.InferenceRequest { return b.requests }

// Trace returns the trace in slot i, which may be nil when tracing is off.
func (b *Batch) Trace(i int) *Trace { return b.traces[i] }

// Time returns the ingress timestamp in slot i.
func (b *Batch) Time(i int) time.Time { return b.times[i] }

// InputBuffer returns the shared buffer for declared input tensor i.
func (b *Batch) InputBuffer(i int) *buffer.Buffer { return b.inputs[i] }

// OutputBuffer returns the shared buffer for declared output tensor i.
func (b *Batch) OutputBuffer(i int) *buffer.Buffer { return b.outputs[i] }

// TakeBuffers transfers ownership of all buffers out of the batch, for
// return to the pool after the last callback fires.
func (b *Batch) TakeBuffers() []*buffer.Buffer {
	bufs := append(b.inputs, b.outputs...)
	b.inputs = nil
	b.outputs = nil
	return bufs
}

// Empty reports whether no requests were appended.
func (b *Batch) Empty() bool { return len(b.requests) == 0 }

// Size returns the number of requests in the batch.
func (b *Batch) Size() int { return len(b.requests) }

// InputSize returns the number of shared input buffers.
func (b *Batch) InputSize() int { return len(b.inputs) }

// OutputSize returns the number of shared output buffers.
func (b *Batch) OutputSize() int { return len(b.outputs) }
