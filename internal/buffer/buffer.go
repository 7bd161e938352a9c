// Package buffer defines how inference requests store their tensor data:
// allocator-tagged byte regions vended by the memory pool.
package buffer

import (
	"encoding/binary"
	"math"

	"inferd/pkg/types"
)

// Allocator identifies the memory domain that produced a buffer.
type Allocator uint8

const (
	// Cpu is plain host memory.
	Cpu Allocator = iota
	// Vart is device tensor memory laid out in per-batch planes.
	Vart
)

func (a Allocator) String() string {
	switch a {
	case Cpu:
		return "cpu"
	case Vart:
		return "vart"
	default:
		return "unknown"
	}
}

type kind uint8

const (
	contiguous kind = iota
	strided
)

// Buffer is a typed region of memory tagged with the allocator that produced
// it. A buffer is owned by exactly one holder at any time: the pool's free
// list or an active batch. Transfer is explicit via pool Get/Put.
type Buffer struct {
	allocator Allocator
	kind      kind
	elemSize  int

	data []byte // contiguous storage

	// strided storage: one plane per outermost shape index
	planes [][]byte
	shape  []int64

	cursor int // write cursor, in bytes
}

// NewCpu returns a contiguous host buffer of capacity bytes whose Data
// offsets advance in elemSize steps.
func NewCpu(capacity, elemSize int) *Buffer {
	return &Buffer{allocator: Cpu, kind: contiguous, elemSize: elemSize, data: make([]byte, capacity)}
}

// NewVart returns a strided device-style buffer. The shape describes one
// batch entry; one plane is allocated per outermost index. Data offsets are
// translated through the stride decomposition of the shape.
func NewVart(batch int, shape []int64, elemSize int) *Buffer {
	if len(shape) == 0 {
		shape = []int64{1}
	}
	inner := int64(1)
	for _, d := range shape[1:] {
		inner *= d
	}
	planeElems := shape[0] * inner
	planes := make([][]byte, batch)
	for i := range planes {
		planes[i] = make([]byte, planeElems*int64(elemSize))
	}
	full := append([]int64{int64(batch)}, shape...)
	return &Buffer{allocator: Vart, kind: strided, elemSize: elemSize, planes: planes, shape: full}
}

// Allocator returns the tag of the allocator that produced this buffer.
func (b *Buffer) Allocator() Allocator { return b.allocator }

// Capacity returns the total byte capacity.
func (b *Buffer) Capacity() int {
	if b.kind == contiguous {
		return len(b.data)
	}
	n := 0
	for _, p := range b.planes {
		n += len(p)
	}
	return n
}

// Data returns writable storage starting at the given flat element offset.
// Contiguous buffers index directly; strided buffers translate the offset
// through the stride decomposition of the associated shape to locate the
// plane holding it.
func (b *Buffer) Data(offset int64) []byte {
	if b.kind == contiguous {
		return b.data[offset*int64(b.elemSize):]
	}
	// decompose the flat offset against the shape, outermost first
	rem := offset
	strides := make([]int64, len(b.shape))
	stride := int64(1)
	for k := len(b.shape) - 1; k >= 0; k-- {
		strides[k] = stride
		stride *= b.shape[k]
	}
	plane := rem / strides[0]
	rem -= plane * strides[0]
	return b.planes[plane][rem*int64(b.elemSize):]
}

// Reset rewinds the write cursor. The pool calls this on Put; contents are
// not cleared.
func (b *Buffer) Reset() { b.cursor = 0 }

// Rebind retags the element width Data offsets advance by. The pool calls
// this when a recycled buffer is vended for a different datatype.
func (b *Buffer) Rebind(elemSize int) { b.elemSize = elemSize }

// Compatible reports whether a recycled buffer can serve the given
// (batch, shape, element width). Contiguous buffers only need capacity,
// which the pool checks separately; strided buffers also need matching
// plane geometry.
func (b *Buffer) Compatible(batch int, shape []int64, elemSize int) bool {
	if b.kind == contiguous {
		return true
	}
	if b.elemSize != elemSize || len(b.planes) != batch {
		return false
	}
	if len(shape) == 0 {
		shape = []int64{1}
	}
	if len(b.shape) != len(shape)+1 {
		return false
	}
	for i, d := range shape {
		if b.shape[i+1] != d {
			return false
		}
	}
	return true
}

// Write copies raw bytes at the byte offset and reports how many were
// written.
func (b *Buffer) Write(offset int64, p []byte) int {
	dst := b.byteRegion(offset)
	return copy(dst, p)
}

func (b *Buffer) byteRegion(offset int64) []byte {
	if b.kind == contiguous {
		return b.data[offset:]
	}
	plane := int64(0)
	for offset >= int64(len(b.planes[plane])) {
		offset -= int64(len(b.planes[plane]))
		plane++
	}
	return b.planes[plane][offset:]
}

// WriteUint32 appends a value at the cursor.
func (b *Buffer) WriteUint32(v uint32) {
	binary.LittleEndian.PutUint32(b.byteRegion(int64(b.cursor)), v)
	b.cursor += 4
}

// WriteUint8 appends a value at the cursor.
func (b *Buffer) WriteUint8(v uint8) {
	b.byteRegion(int64(b.cursor))[0] = v
	b.cursor++
}

// WriteFloat32 appends a value at the cursor.
func (b *Buffer) WriteFloat32(v float32) {
	binary.LittleEndian.PutUint32(b.byteRegion(int64(b.cursor)), math.Float32bits(v))
	b.cursor += 4
}

// WriteString appends a null-terminated string at the cursor.
func (b *Buffer) WriteString(s string) {
	region := b.byteRegion(int64(b.cursor))
	n := copy(region, s)
	region[n] = 0
	b.cursor += n + 1
}

// Fits reports whether count elements of the tensor's datatype fit starting
// at the flat element offset.
func (b *Buffer) Fits(offset, count int64, dt types.DataType) bool {
	need := (offset + count) * int64(dt.Size())
	return need <= int64(b.Capacity())
}
