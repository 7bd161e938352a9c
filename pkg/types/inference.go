package types

import "sync"

// InferenceRequestInput is one named input tensor of a request plus its raw
// data.
type InferenceRequestInput struct {
	Name       string
	Shape      []int64
	Datatype   DataType
	Parameters *ParameterMap
	Data       []byte
}

// Tensor returns the descriptor for this input.
func (i InferenceRequestInput) Tensor() Tensor {
	return Tensor{Name: i.Name, Shape: i.Shape, Datatype: i.Datatype}
}

// Elements returns the element count implied by the input's shape.
func (i InferenceRequestInput) Elements() int64 {
	return i.Tensor().Elements()
}

// InferenceRequestOutput names a requested output tensor. Data, if set,
// points at caller-provided storage for the result.
type InferenceRequestOutput struct {
	Name       string
	Parameters *ParameterMap
	Data       []byte
}

// InferenceResponseOutput is one produced output tensor.
type InferenceResponseOutput struct {
	Name       string
	Shape      []int64
	Datatype   DataType
	Parameters *ParameterMap
	Data       []byte
}

// InferenceResponse is the unit returned per request. A non-empty Error
// signals per-request failure; Outputs are meaningless in that case.
type InferenceResponse struct {
	ID      string
	Model   string
	Outputs []InferenceResponseOutput
	Error   string
}

// Ok reports whether the response carries a successful result.
func (r *InferenceResponse) Ok() bool { return r.Error == "" }

// AddOutput appends an output tensor to the response.
func (r *InferenceResponse) AddOutput(out InferenceResponseOutput) {
	r.Outputs = append(r.Outputs, out)
}

// Callback is the one-shot completion channel by which a response (or
// error) is delivered to the submitter of a request.
type Callback func(*InferenceResponse)

// InferenceRequest is the unit of work submitted by a client. The callback
// fires exactly once per request counting error paths; requests are shared
// by pointer between the ingress path and the worker thread.
type InferenceRequest struct {
	ID         string
	Parameters *ParameterMap
	Inputs     []InferenceRequestInput
	Outputs    []InferenceRequestOutput

	callback     Callback
	callbackOnce sync.Once
}

// SetCallback installs the completion callback. It must be set before the
// request enters a worker ingress queue.
func (r *InferenceRequest) SetCallback(cb Callback) { r.callback = cb }

// TakeCallback moves the callback to another request, for kernels that
// complete through a derived request. The receiver keeps its once-guard so
// a stray completion on the original stays a no-op.
func (r *InferenceRequest) TakeCallback() Callback {
	cb := r.callback
	r.callback = nil
	return cb
}

// RunCallback delivers resp to the submitter. At most one of RunCallback
// and RunCallbackError has any effect; later calls are dropped.
func (r *InferenceRequest) RunCallback(resp *InferenceResponse) {
	r.callbackOnce.Do(func() {
		if r.callback != nil {
			r.callback(resp)
		}
	})
}

// RunCallbackError delivers a per-request failure to the submitter.
func (r *InferenceRequest) RunCallbackError(msg string) {
	r.RunCallback(&InferenceResponse{ID: r.ID, Error: msg})
}
