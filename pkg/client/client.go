// Package client defines the client surface for the inference runtime:
// the Client interface mirroring the KServe v2 API with extensions, an
// in-process implementation over the dispatch façade, and HTTP and gRPC
// implementations for remote servers.
package client

import (
	"time"

	"inferd/pkg/types"
)

// Client is the set of methods every client implementation provides,
// following the KServe API with extensions.
type Client interface {
	ServerMetadata() (types.ServerMetadata, error)
	ServerLive() (bool, error)
	ServerReady() (bool, error)
	ModelReady(model string) (bool, error)
	ModelMetadata(model string) (types.ModelMetadata, error)
	ModelLoad(model string, parameters *types.ParameterMap) error
	ModelUnload(model string) error
	ModelInfer(model string, request *types.InferenceRequest) (*types.InferenceResponse, error)
	ModelInferAsync(model string, request *types.InferenceRequest) *ResponseFuture
	ModelList() ([]string, error)
	WorkerLoad(worker string, parameters *types.ParameterMap) (string, error)
	WorkerUnload(worker string) error
	HasHardware(name string, num int) (bool, error)
}

// ResponseFuture resolves once with the response to an asynchronous
// inference request. Failures arrive as responses with Error set.
type ResponseFuture struct {
	ch chan *types.InferenceResponse
}

func newFuture() *ResponseFuture {
	return &ResponseFuture{ch: make(chan *types.InferenceResponse, 1)}
}

func (f *ResponseFuture) resolve(resp *types.InferenceResponse) {
	f.ch <- resp
}

// Get blocks until the response is available.
func (f *ResponseFuture) Get() *types.InferenceResponse {
	return <-f.ch
}

// ServerHasExtension checks whether the server advertises an extension.
func ServerHasExtension(c Client, extension string) (bool, error) {
	metadata, err := c.ServerMetadata()
	if err != nil {
		return false, err
	}
	return metadata.HasExtension(extension), nil
}

// WaitUntilServerReady blocks until the server reports ready, sleeping one
// second between attempts while the server is unreachable. Errors other
// than connection failures propagate.
func WaitUntilServerReady(c Client) error {
	for {
		ready, err := c.ServerReady()
		if err != nil {
			if IsConnectionError(err) {
				time.Sleep(time.Second)
				continue
			}
			return err
		}
		if ready {
			return nil
		}
		time.Sleep(time.Second)
	}
}

// WaitUntilModelReady blocks until the named model reports ready.
func WaitUntilModelReady(c Client, model string) error {
	for {
		ready, err := c.ModelReady(model)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
	}
}

// InferAsyncOrdered submits all requests in parallel and gathers the
// responses in submission order. Error responses are intermixed with
// successful ones.
func InferAsyncOrdered(c Client, model string, requests []*types.InferenceRequest) []*types.InferenceResponse {
	futures := make([]*ResponseFuture, len(requests))
	for i, request := range requests {
		futures[i] = c.ModelInferAsync(model, request)
	}
	responses := make([]*types.InferenceResponse, len(requests))
	for i, future := range futures {
		responses[i] = future.Get()
	}
	return responses
}

// InferAsyncOrderedBatched submits requests in rounds of exactly batchSize
// (the final round takes the remainder), resolving each round in
// submission order before starting the next.
func InferAsyncOrderedBatched(c Client, model string, requests []*types.InferenceRequest, batchSize int) []*types.InferenceResponse {
	if batchSize <= 0 {
		batchSize = 1
	}
	responses := make([]*types.InferenceResponse, 0, len(requests))
	for start := 0; start < len(requests); start += batchSize {
		end := start + batchSize
		if end > len(requests) {
			end = len(requests)
		}
		futures := make([]*ResponseFuture, 0, end-start)
		for _, request := range requests[start:end] {
			futures = append(futures, c.ModelInferAsync(model, request))
		}
		for _, future := range futures {
			responses = append(responses, future.Get())
		}
	}
	return responses
}
