package types

// Tensor describes a named tensor: its shape and datatype. Workers declare
// the tensors they accept and produce; the memory pool sizes buffers from
// them.
type Tensor struct {
	Name     string   `json:"name"`
	Shape    []int64  `json:"shape"`
	Datatype DataType `json:"datatype"`
}

// Elements returns the number of scalar elements described by the shape.
// An empty shape describes a scalar and counts as one element.
func (t Tensor) Elements() int64 {
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// ByteSize returns Elements scaled by the datatype width. For String tensors
// this is a per-element minimum; actual payloads are variable-length.
func (t Tensor) ByteSize() int64 {
	return t.Elements() * int64(t.Datatype.Size())
}
