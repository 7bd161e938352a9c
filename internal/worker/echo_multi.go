package worker

import (
	"encoding/binary"
	"fmt"

	"inferd/internal/batch"
	"inferd/internal/buffer"
	"inferd/pkg/types"
)

func init() {
	Register("echo_multi", func() Kernel { return &echoMultiKernel{} })
}

var (
	echoMultiInputLengths  = []int64{1, 2}
	echoMultiOutputLengths = []int64{1, 4, 3}
)

// echoMultiKernel declares two input tensors and three output tensors, all
// uint32, and fills the outputs round-robin from the concatenated input
// values.
type echoMultiKernel struct{}

func (k *echoMultiKernel) Init(params *types.ParameterMap) error { return nil }

func (k *echoMultiKernel) Acquire(params *types.ParameterMap) (Metadata, error) {
	meta := Metadata{Allocators: []buffer.Allocator{buffer.Cpu}}
	for i, n := range echoMultiInputLengths {
		meta.Inputs = append(meta.Inputs, types.Tensor{
			Name: fmt.Sprintf("input%d", i), Shape: []int64{n}, Datatype: types.Uint32,
		})
	}
	for i, n := range echoMultiOutputLengths {
		meta.Outputs = append(meta.Outputs, types.Tensor{
			Name: fmt.Sprintf("output%d", i), Shape: []int64{n}, Datatype: types.Uint32,
		})
	}
	return meta, nil
}

func (k *echoMultiKernel) Compute(b *batch.Batch) ([]types.InferenceResponse, error) {
	var inputTotal int64
	for _, n := range echoMultiInputLengths {
		inputTotal += n
	}

	responses := make([]types.InferenceResponse, b.Size())
	for j := 0; j < b.Size(); j++ {
		req := b.Request(j)
		resp := types.InferenceResponse{ID: req.ID, Model: "echo_multi"}

		args := make([]uint32, 0, inputTotal)
		for i, n := range echoMultiInputLengths {
			src := b.InputBuffer(i).Data(int64(j) * n)
			for e := int64(0); e < n; e++ {
				args = append(args, binary.LittleEndian.Uint32(src[e*4:]))
			}
		}

		idx := 0
		for i, n := range echoMultiOutputLengths {
			data := make([]byte, n*4)
			for e := int64(0); e < n; e++ {
				binary.LittleEndian.PutUint32(data[e*4:], args[idx])
				idx = (idx + 1) % len(args)
			}
			resp.AddOutput(types.InferenceResponseOutput{
				Name:     fmt.Sprintf("output%d", i),
				Shape:    []int64{n},
				Datatype: types.Uint32,
				Data:     data,
			})
		}
		responses[j] = resp
	}
	return responses, nil
}

func (k *echoMultiKernel) Release() error { return nil }

func (k *echoMultiKernel) Destroy() {}
