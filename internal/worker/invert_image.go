package worker

import (
	"inferd/internal/batch"
	"inferd/internal/buffer"
	"inferd/pkg/types"
)

func init() {
	Register("invertimage", func() Kernel { return &invertImageKernel{} })
}

// invertImageKernel inverts a uint8 image tensor: every element becomes
// 255−x. The image geometry is configurable at load time.
type invertImageKernel struct {
	height   int64
	width    int64
	channels int64
}

func (k *invertImageKernel) Init(params *types.ParameterMap) error {
	k.height, k.width, k.channels = 224, 224, 3
	if params.Has("height") {
		k.height = int64(params.GetInt("height"))
	}
	if params.Has("width") {
		k.width = int64(params.GetInt("width"))
	}
	if params.Has("channels") {
		k.channels = int64(params.GetInt("channels"))
	}
	return nil
}

func (k *invertImageKernel) Acquire(params *types.ParameterMap) (Metadata, error) {
	shape := []int64{k.height, k.width, k.channels}
	return Metadata{
		Inputs:     []types.Tensor{{Name: "image", Shape: shape, Datatype: types.Uint8}},
		Outputs:    []types.Tensor{{Name: "image", Shape: shape, Datatype: types.Uint8}},
		Allocators: []buffer.Allocator{buffer.Cpu},
	}, nil
}

func (k *invertImageKernel) Compute(b *batch.Batch) ([]types.InferenceResponse, error) {
	elems := k.height * k.width * k.channels
	responses := make([]types.InferenceResponse, b.Size())
	for j := 0; j < b.Size(); j++ {
		req := b.Request(j)
		resp := types.InferenceResponse{ID: req.ID, Model: "invertimage"}

		// requests may carry fewer elements than the declared capacity
		n := req.Inputs[0].Elements()
		src := b.InputBuffer(0).Data(int64(j) * elems)
		data := make([]byte, n)
		for e := int64(0); e < n; e++ {
			data[e] = 255 - src[e]
		}
		resp.AddOutput(types.InferenceResponseOutput{
			Name:     "image",
			Shape:    req.Inputs[0].Shape,
			Datatype: types.Uint8,
			Data:     data,
		})
		responses[j] = resp
	}
	return responses, nil
}

func (k *invertImageKernel) Release() error { return nil }

func (k *invertImageKernel) Destroy() {}
