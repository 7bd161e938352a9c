package client

import (
	"context"

	"inferd/internal/manager"
	"inferd/pkg/types"
)

// NativeClient talks to an in-process dispatch façade directly, with no
// serialization. It is the client embedded applications use.
type NativeClient struct {
	mgr *manager.Manager
}

// NewNativeClient wraps an in-process façade.
func NewNativeClient(mgr *manager.Manager) *NativeClient {
	return &NativeClient{mgr: mgr}
}

func (c *NativeClient) ServerMetadata() (types.ServerMetadata, error) {
	return c.mgr.ServerMetadata(), nil
}

func (c *NativeClient) ServerLive() (bool, error) { return c.mgr.ServerLive(), nil }

func (c *NativeClient) ServerReady() (bool, error) { return c.mgr.ServerReady(), nil }

func (c *NativeClient) ModelReady(model string) (bool, error) {
	return c.mgr.ModelReady(model), nil
}

func (c *NativeClient) ModelMetadata(model string) (types.ModelMetadata, error) {
	return c.mgr.ModelMetadata(model)
}

func (c *NativeClient) ModelLoad(model string, parameters *types.ParameterMap) error {
	return c.mgr.ModelLoad(model, parameters)
}

func (c *NativeClient) ModelUnload(model string) error {
	return c.mgr.ModelUnload(model)
}

func (c *NativeClient) ModelInfer(model string, request *types.InferenceRequest) (*types.InferenceResponse, error) {
	return c.mgr.ModelInferSync(context.Background(), model, request)
}

// ModelInferAsync enqueues the request and resolves the returned future
// from the request's completion callback. Dispatch failures resolve the
// future with an error response.
func (c *NativeClient) ModelInferAsync(model string, request *types.InferenceRequest) *ResponseFuture {
	future := newFuture()
	request.SetCallback(func(resp *types.InferenceResponse) { future.resolve(resp) })
	if err := c.mgr.ModelInfer(model, request); err != nil {
		request.RunCallbackError(err.Error())
	}
	return future
}

func (c *NativeClient) ModelList() ([]string, error) { return c.mgr.ModelList(), nil }

func (c *NativeClient) WorkerLoad(worker string, parameters *types.ParameterMap) (string, error) {
	return c.mgr.WorkerLoad(worker, parameters)
}

func (c *NativeClient) WorkerUnload(worker string) error {
	return c.mgr.WorkerUnload(worker)
}

func (c *NativeClient) HasHardware(name string, num int) (bool, error) {
	return c.mgr.HasHardware(name, num), nil
}
