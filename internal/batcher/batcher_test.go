package batcher

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"inferd/internal/batch"
	"inferd/internal/buffer"
	"inferd/internal/pool"
	"inferd/pkg/types"
)

var uint32Scalar = []types.Tensor{{Name: "input", Shape: []int64{1}, Datatype: types.Uint32}}

func newTestBatcher(kind Kind, cfg Config) *Batcher {
	return New(kind, cfg, uint32Scalar, uint32Scalar, []buffer.Allocator{buffer.Cpu}, pool.New(), zerolog.Nop())
}

func uint32Request(id string, v uint32) *types.InferenceRequest {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, v)
	return &types.InferenceRequest{
		ID:     id,
		Inputs: []types.InferenceRequestInput{{Name: "input", Shape: []int64{1}, Datatype: types.Uint32, Data: data}},
	}
}

func collect(t *testing.T, b *Batcher) *batch.Batch {
	t.Helper()
	select {
	case bt := <-b.Batches():
		return bt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}

func TestPassThrough(t *testing.T) {
	b := newTestBatcher(Soft, Config{MaxBatchSize: 1})
	b.Start()
	defer b.Shutdown()

	b.Enqueue(uint32Request("r0", 7))
	bt := collect(t, b)
	if bt.Size() != 1 {
		t.Fatalf("size=%d", bt.Size())
	}
	if got := binary.LittleEndian.Uint32(bt.InputBuffer(0).Data(0)); got != 7 {
		t.Fatalf("slot0=%d", got)
	}
}

func TestHardFillsToN(t *testing.T) {
	b := newTestBatcher(Hard, Config{MaxBatchSize: 3})
	b.Start()
	defer b.Shutdown()

	for i, v := range []uint32{10, 20, 30} {
		b.Enqueue(uint32Request(string(rune('a'+i)), v))
	}
	bt := collect(t, b)
	if bt.Size() != 3 {
		t.Fatalf("size=%d", bt.Size())
	}
	for i, want := range []uint32{10, 20, 30} {
		if got := binary.LittleEndian.Uint32(bt.InputBuffer(0).Data(int64(i))); got != want {
			t.Fatalf("slot%d=%d want %d", i, got, want)
		}
	}
}

func TestSoftTimeoutEmitsPartial(t *testing.T) {
	b := newTestBatcher(Soft, Config{MaxBatchSize: 4, Timeout: 50 * time.Millisecond})
	b.Start()
	defer b.Shutdown()

	b.Enqueue(uint32Request("a", 1))
	b.Enqueue(uint32Request("b", 2))
	start := time.Now()
	bt := collect(t, b)
	if bt.Size() != 2 {
		t.Fatalf("size=%d", bt.Size())
	}
	if time.Since(start) > time.Second {
		t.Fatal("timeout batch took too long")
	}
}

func TestShutdownFlushesPartial(t *testing.T) {
	b := newTestBatcher(Hard, Config{MaxBatchSize: 4})
	b.Start()

	b.Enqueue(uint32Request("a", 1))
	b.Enqueue(uint32Request("b", 2))
	go b.Shutdown()
	bt := collect(t, b)
	if bt.Size() != 2 {
		t.Fatalf("flushed size=%d", bt.Size())
	}
}

func TestArrivalOrderPreserved(t *testing.T) {
	b := newTestBatcher(Hard, Config{MaxBatchSize: 2})
	b.Start()

	for i := 0; i < 6; i++ {
		b.Enqueue(uint32Request(string(rune('a'+i)), uint32(i)))
	}
	var ids []string
	for i := 0; i < 3; i++ {
		bt := collect(t, b)
		for _, req := range bt.Requests() {
			ids = append(ids, req.ID)
		}
	}
	b.Shutdown()
	want := "abcdef"
	for i, id := range ids {
		if id != string(want[i]) {
			t.Fatalf("order=%v", ids)
		}
	}
}

func TestRankMismatchFailsOnlyThatRequest(t *testing.T) {
	b := newTestBatcher(Hard, Config{MaxBatchSize: 2})
	b.Start()
	defer b.Shutdown()

	bad := &types.InferenceRequest{
		ID:     "bad",
		Inputs: []types.InferenceRequestInput{{Name: "input", Shape: []int64{1, 1}, Datatype: types.Uint32, Data: make([]byte, 4)}},
	}
	errCh := make(chan *types.InferenceResponse, 1)
	bad.SetCallback(func(resp *types.InferenceResponse) { errCh <- resp })

	b.Enqueue(bad)
	b.Enqueue(uint32Request("g1", 5))
	b.Enqueue(uint32Request("g2", 6))

	select {
	case resp := <-errCh:
		if resp.Error == "" {
			t.Fatal("expected error response for rank mismatch")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("bad request callback never fired")
	}
	bt := collect(t, b)
	if bt.Size() != 2 || bt.Request(0).ID != "g1" || bt.Request(1).ID != "g2" {
		t.Fatalf("batch=%v", bt.Requests())
	}
}

func TestOversizedInputRejected(t *testing.T) {
	b := newTestBatcher(Soft, Config{MaxBatchSize: 1})
	b.Start()
	defer b.Shutdown()

	big := &types.InferenceRequest{
		ID:     "big",
		Inputs: []types.InferenceRequestInput{{Name: "input", Shape: []int64{4}, Datatype: types.Uint32, Data: make([]byte, 16)}},
	}
	errCh := make(chan *types.InferenceResponse, 1)
	big.SetCallback(func(resp *types.InferenceResponse) { errCh <- resp })
	b.Enqueue(big)

	select {
	case resp := <-errCh:
		if resp.Error == "" {
			t.Fatal("expected capacity error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("oversized request callback never fired")
	}
}

func TestZeroInputsRejected(t *testing.T) {
	b := newTestBatcher(Soft, Config{MaxBatchSize: 1})
	b.Start()
	defer b.Shutdown()

	empty := &types.InferenceRequest{ID: "empty"}
	errCh := make(chan *types.InferenceResponse, 1)
	empty.SetCallback(func(resp *types.InferenceResponse) { errCh <- resp })
	b.Enqueue(empty)

	select {
	case resp := <-errCh:
		if resp.Error == "" {
			t.Fatal("expected rejection for zero inputs")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("empty request callback never fired")
	}
}
