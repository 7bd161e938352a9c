package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// scalarCodec packs one scalar datatype between its JSON value and its byte
// representation. Each codec is a small value type; codecFor is the single
// dispatch point on DataType.
type scalarCodec struct {
	width  int
	encode func(v float64, dst []byte)
	decode func(src []byte) any
}

func codecFor(dt DataType) (scalarCodec, bool) {
	switch dt {
	case Bool:
		return scalarCodec{1, func(v float64, dst []byte) {
			if v != 0 {
				dst[0] = 1
			} else {
				dst[0] = 0
			}
		}, func(src []byte) any { return src[0] != 0 }}, true
	case Uint8:
		return scalarCodec{1, func(v float64, dst []byte) { dst[0] = uint8(v) },
			func(src []byte) any { return src[0] }}, true
	case Int8:
		return scalarCodec{1, func(v float64, dst []byte) { dst[0] = byte(int8(v)) },
			func(src []byte) any { return int8(src[0]) }}, true
	case Uint16:
		return scalarCodec{2, func(v float64, dst []byte) { binary.LittleEndian.PutUint16(dst, uint16(v)) },
			func(src []byte) any { return binary.LittleEndian.Uint16(src) }}, true
	case Int16:
		return scalarCodec{2, func(v float64, dst []byte) { binary.LittleEndian.PutUint16(dst, uint16(int16(v))) },
			func(src []byte) any { return int16(binary.LittleEndian.Uint16(src)) }}, true
	case Uint32:
		return scalarCodec{4, func(v float64, dst []byte) { binary.LittleEndian.PutUint32(dst, uint32(v)) },
			func(src []byte) any { return binary.LittleEndian.Uint32(src) }}, true
	case Int32:
		return scalarCodec{4, func(v float64, dst []byte) { binary.LittleEndian.PutUint32(dst, uint32(int32(v))) },
			func(src []byte) any { return int32(binary.LittleEndian.Uint32(src)) }}, true
	case Uint64:
		return scalarCodec{8, func(v float64, dst []byte) { binary.LittleEndian.PutUint64(dst, uint64(v)) },
			func(src []byte) any { return binary.LittleEndian.Uint64(src) }}, true
	case Int64:
		return scalarCodec{8, func(v float64, dst []byte) { binary.LittleEndian.PutUint64(dst, uint64(int64(v))) },
			func(src []byte) any { return int64(binary.LittleEndian.Uint64(src)) }}, true
	case Fp16:
		return scalarCodec{2, func(v float64, dst []byte) { binary.LittleEndian.PutUint16(dst, float16FromFloat32(float32(v))) },
			func(src []byte) any { return float16ToFloat32(binary.LittleEndian.Uint16(src)) }}, true
	case Fp32:
		return scalarCodec{4, func(v float64, dst []byte) { binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v))) },
			func(src []byte) any { return math.Float32frombits(binary.LittleEndian.Uint32(src)) }}, true
	case Fp64:
		return scalarCodec{8, func(v float64, dst []byte) { binary.LittleEndian.PutUint64(dst, math.Float64bits(v)) },
			func(src []byte) any { return math.Float64frombits(binary.LittleEndian.Uint64(src)) }}, true
	default:
		return scalarCodec{}, false
	}
}

// EncodeTensorData packs a flat slice of JSON values into bytes for the
// given datatype. Strings are packed null-terminated; everything else is
// fixed-width little-endian.
func EncodeTensorData(dt DataType, values []any) ([]byte, error) {
	if dt == String {
		var out []byte
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("datatype STRING requires string values, got %T", v)
			}
			out = append(out, s...)
			out = append(out, 0)
		}
		return out, nil
	}
	codec, ok := codecFor(dt)
	if !ok {
		return nil, fmt.Errorf("no codec for datatype %s", dt)
	}
	out := make([]byte, len(values)*codec.width)
	for i, v := range values {
		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		codec.encode(f, out[i*codec.width:])
	}
	return out, nil
}

// DecodeTensorData unpacks n elements of the given datatype from data into
// JSON-marshalable values.
func DecodeTensorData(dt DataType, data []byte, n int64) ([]any, error) {
	if dt == String {
		out := make([]any, 0, n)
		start := 0
		for i := range data {
			if data[i] == 0 {
				out = append(out, string(data[start:i]))
				start = i + 1
			}
		}
		return out, nil
	}
	codec, ok := codecFor(dt)
	if !ok {
		return nil, fmt.Errorf("no codec for datatype %s", dt)
	}
	if int64(len(data)) < n*int64(codec.width) {
		return nil, fmt.Errorf("datatype %s: have %d bytes, need %d", dt, len(data), n*int64(codec.width))
	}
	out := make([]any, n)
	for i := int64(0); i < n; i++ {
		out[i] = codec.decode(data[i*int64(codec.width):])
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("non-numeric value %T", v)
	}
}

// float16FromFloat32 converts to IEEE 754 half-precision bits with
// round-to-nearest-even.
func float16FromFloat32(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23&0xff) - 127 + 15
	mant := bits & 0x7fffff

	switch {
	case exp >= 0x1f: // overflow or inf/nan
		if exp == 0xff-127+15 && mant != 0 {
			return sign | 0x7e00 // nan
		}
		return sign | 0x7c00 // inf
	case exp <= 0: // subnormal or zero
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		shift := uint32(14 - exp)
		half := uint16(mant >> shift)
		if r := uint32(1) << (shift - 1); mant&r != 0 && (mant&(r-1) != 0 || half&1 != 0) {
			half++
		}
		return sign | half
	default:
		half := sign | uint16(exp)<<10 | uint16(mant>>13)
		if mant&0x1000 != 0 && mant&0x2fff != 0 {
			half++
		}
		return half
	}
}

// float16ToFloat32 expands IEEE 754 half-precision bits.
func float16ToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h >> 10 & 0x1f)
	mant := uint32(h & 0x3ff)

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// normalize subnormal
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		exp++
		mant &= 0x3ff
		return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
	case 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | mant<<13)
	default:
		return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
	}
}
