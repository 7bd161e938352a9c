package client

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"inferd/pkg/types"
)

// fakeClient resolves inference futures immediately and records call
// order.
type fakeClient struct {
	mu         sync.Mutex
	inferred   []string
	readyErrs  []error
	readyCalls int
}

func (f *fakeClient) ServerMetadata() (types.ServerMetadata, error) {
	return types.ServerMetadata{Name: "fake", Extensions: []string{"metrics"}}, nil
}
func (f *fakeClient) ServerLive() (bool, error) { return true, nil }
func (f *fakeClient) ServerReady() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.readyCalls < len(f.readyErrs) {
		err := f.readyErrs[f.readyCalls]
		f.readyCalls++
		if err != nil {
			return false, err
		}
	}
	return true, nil
}
func (f *fakeClient) ModelReady(model string) (bool, error) { return true, nil }
func (f *fakeClient) ModelMetadata(model string) (types.ModelMetadata, error) {
	return types.ModelMetadata{Name: model}, nil
}
func (f *fakeClient) ModelLoad(model string, parameters *types.ParameterMap) error { return nil }
func (f *fakeClient) ModelUnload(model string) error                               { return nil }
func (f *fakeClient) ModelInfer(model string, request *types.InferenceRequest) (*types.InferenceResponse, error) {
	return &types.InferenceResponse{ID: request.ID, Model: model}, nil
}
func (f *fakeClient) ModelInferAsync(model string, request *types.InferenceRequest) *ResponseFuture {
	f.mu.Lock()
	f.inferred = append(f.inferred, request.ID)
	f.mu.Unlock()
	future := newFuture()
	future.resolve(&types.InferenceResponse{ID: request.ID, Model: model})
	return future
}
func (f *fakeClient) ModelList() ([]string, error) { return nil, nil }
func (f *fakeClient) WorkerLoad(worker string, parameters *types.ParameterMap) (string, error) {
	return worker, nil
}
func (f *fakeClient) WorkerUnload(worker string) error            { return nil }
func (f *fakeClient) HasHardware(name string, num int) (bool, error) { return true, nil }

func makeRequests(n int) []*types.InferenceRequest {
	reqs := make([]*types.InferenceRequest, n)
	for i := range reqs {
		reqs[i] = &types.InferenceRequest{
			ID:     fmt.Sprintf("r%02d", i),
			Inputs: []types.InferenceRequestInput{{Name: "input", Shape: []int64{1}, Datatype: types.Uint32, Data: []byte{0, 0, 0, 0}}},
		}
	}
	return reqs
}

func TestInferAsyncOrdered(t *testing.T) {
	f := &fakeClient{}
	reqs := makeRequests(7)
	responses := InferAsyncOrdered(f, "echo", reqs)
	if len(responses) != 7 {
		t.Fatalf("responses=%d", len(responses))
	}
	for i, resp := range responses {
		if resp.ID != reqs[i].ID {
			t.Fatalf("order broken at %d: %s", i, resp.ID)
		}
	}
}

func TestInferAsyncOrderedBatched(t *testing.T) {
	f := &fakeClient{}
	reqs := makeRequests(10)
	responses := InferAsyncOrderedBatched(f, "echo", reqs, 4)
	if len(responses) != 10 {
		t.Fatalf("responses=%d", len(responses))
	}
	for i, resp := range responses {
		if resp.ID != reqs[i].ID {
			t.Fatalf("order broken at %d: %s", i, resp.ID)
		}
	}
	// every request goes out exactly once, in submission order
	if len(f.inferred) != 10 {
		t.Fatalf("inferred=%v", f.inferred)
	}
	for i, id := range f.inferred {
		if id != reqs[i].ID {
			t.Fatalf("submission order broken at %d: %s", i, id)
		}
	}
}

func TestInferAsyncOrderedBatchedRemainder(t *testing.T) {
	f := &fakeClient{}
	reqs := makeRequests(5)
	responses := InferAsyncOrderedBatched(f, "echo", reqs, 2)
	if len(responses) != 5 {
		t.Fatalf("responses=%d want all requests submitted", len(responses))
	}
	if responses[4].ID != "r04" {
		t.Fatalf("last=%s", responses[4].ID)
	}
}

func TestWaitUntilServerReadyRetriesConnectionErrors(t *testing.T) {
	f := &fakeClient{readyErrs: []error{ErrConnection(errors.New("refused"))}}
	if err := WaitUntilServerReady(f); err != nil {
		t.Fatalf("err=%v", err)
	}
	if f.readyCalls != 1 {
		t.Fatalf("readyCalls=%d", f.readyCalls)
	}
}

func TestWaitUntilServerReadyPropagatesOtherErrors(t *testing.T) {
	f := &fakeClient{readyErrs: []error{ErrBadStatus(500, "boom")}}
	if err := WaitUntilServerReady(f); !IsBadStatus(err) {
		t.Fatalf("err=%v", err)
	}
}

func TestServerHasExtension(t *testing.T) {
	f := &fakeClient{}
	has, err := ServerHasExtension(f, "metrics")
	if err != nil || !has {
		t.Fatalf("has=%v err=%v", has, err)
	}
	has, err = ServerHasExtension(f, "tracing")
	if err != nil || has {
		t.Fatalf("has=%v err=%v", has, err)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	conn := ErrConnection(errors.New("dial tcp: refused"))
	if !IsConnectionError(conn) || IsBadStatus(conn) {
		t.Fatal("connection error misclassified")
	}
	bad := ErrBadStatus(404, "model not found")
	if !IsBadStatus(bad) || IsConnectionError(bad) {
		t.Fatal("bad status misclassified")
	}
	if BadStatusCode(bad) != 404 {
		t.Fatalf("code=%d", BadStatusCode(bad))
	}
}
