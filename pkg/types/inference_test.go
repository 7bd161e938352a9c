package types

import (
	"sync"
	"testing"
)

func TestCallbackFiresExactlyOnce(t *testing.T) {
	req := &InferenceRequest{ID: "r1"}
	calls := 0
	req.SetCallback(func(resp *InferenceResponse) { calls++ })

	req.RunCallback(&InferenceResponse{ID: "r1"})
	req.RunCallback(&InferenceResponse{ID: "r1"})
	req.RunCallbackError("late failure")

	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestCallbackErrorPath(t *testing.T) {
	req := &InferenceRequest{ID: "r2"}
	var got *InferenceResponse
	req.SetCallback(func(resp *InferenceResponse) { got = resp })
	req.RunCallbackError("boom")
	if got == nil || got.Error != "boom" || got.ID != "r2" {
		t.Fatalf("got=%+v", got)
	}
	if got.Ok() {
		t.Fatal("error response should not be ok")
	}
}

func TestCallbackConcurrentOnce(t *testing.T) {
	req := &InferenceRequest{ID: "r3"}
	var mu sync.Mutex
	calls := 0
	req.SetCallback(func(resp *InferenceResponse) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req.RunCallback(&InferenceResponse{})
		}()
	}
	wg.Wait()
	if calls != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestRESTInferRequestConversion(t *testing.T) {
	body := &RESTInferRequest{
		ID: "q1",
		Inputs: []RESTRequestInput{
			{Name: "input", Shape: []int64{1}, Datatype: "UINT32", Data: []any{float64(7)}},
		},
		Outputs: []RESTRequestOutput{{Name: "output"}},
	}
	req, err := body.ToInferenceRequest()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(req.Inputs) != 1 || req.Inputs[0].Datatype != Uint32 {
		t.Fatalf("inputs=%+v", req.Inputs)
	}
	if len(req.Inputs[0].Data) != 4 {
		t.Fatalf("data len=%d", len(req.Inputs[0].Data))
	}
	if req.Outputs[0].Name != "output" {
		t.Fatalf("outputs=%+v", req.Outputs)
	}
}

func TestRESTInferRequestBadDatatype(t *testing.T) {
	body := &RESTInferRequest{
		Inputs: []RESTRequestInput{{Name: "x", Shape: []int64{1}, Datatype: "NOPE", Data: []any{1.0}}},
	}
	if _, err := body.ToInferenceRequest(); err == nil {
		t.Fatal("expected datatype error")
	}
}
