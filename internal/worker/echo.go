package worker

import (
	"encoding/binary"

	"inferd/internal/batch"
	"inferd/internal/buffer"
	"inferd/pkg/types"
)

func init() {
	Register("echo", func() Kernel { return &echoKernel{} })
}

// echoKernel accepts a single uint32 argument and returns it incremented by
// one. It runs behind a hard batcher.
type echoKernel struct{}

func (k *echoKernel) HardBatching() bool { return true }

func (k *echoKernel) Init(params *types.ParameterMap) error { return nil }

func (k *echoKernel) Acquire(params *types.ParameterMap) (Metadata, error) {
	return Metadata{
		Inputs:     []types.Tensor{{Name: "input", Shape: []int64{1}, Datatype: types.Uint32}},
		Outputs:    []types.Tensor{{Name: "output", Shape: []int64{1}, Datatype: types.Uint32}},
		Allocators: []buffer.Allocator{buffer.Cpu},
	}, nil
}

func (k *echoKernel) Compute(b *batch.Batch) ([]types.InferenceResponse, error) {
	responses := make([]types.InferenceResponse, b.Size())
	for j := 0; j < b.Size(); j++ {
		req := b.Request(j)
		resp := types.InferenceResponse{ID: req.ID, Model: "echo"}

		value := binary.LittleEndian.Uint32(b.InputBuffer(0).Data(int64(j)))
		value++

		// the requested output name wins; fall back to the input's
		name := ""
		if len(req.Outputs) > 0 {
			name = req.Outputs[0].Name
		}
		if name == "" {
			name = req.Inputs[0].Name
		}
		data := make([]byte, 4)
		binary.LittleEndian.PutUint32(data, value)
		resp.AddOutput(types.InferenceResponseOutput{
			Name:     name,
			Shape:    []int64{1},
			Datatype: types.Uint32,
			Data:     data,
		})
		responses[j] = resp
	}
	return responses, nil
}

func (k *echoKernel) Release() error { return nil }

func (k *echoKernel) Destroy() {}
