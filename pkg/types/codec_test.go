package types

import (
	"math"
	"testing"
)

func TestDataTypeSizes(t *testing.T) {
	cases := []struct {
		dt   DataType
		size int
	}{
		{Bool, 1}, {Uint8, 1}, {Int8, 1}, {String, 1},
		{Uint16, 2}, {Int16, 2}, {Fp16, 2},
		{Uint32, 4}, {Int32, 4}, {Fp32, 4},
		{Uint64, 8}, {Int64, 8}, {Fp64, 8},
	}
	for _, c := range cases {
		if got := c.dt.Size(); got != c.size {
			t.Errorf("%s: size=%d want %d", c.dt, got, c.size)
		}
	}
}

func TestParseDataTypeRoundTrip(t *testing.T) {
	for _, dt := range []DataType{Bool, Uint8, Uint16, Uint32, Uint64, Int8, Int16, Int32, Int64, Fp16, Fp32, Fp64, String} {
		parsed, err := ParseDataType(dt.String())
		if err != nil {
			t.Fatalf("parse %s: %v", dt, err)
		}
		if parsed != dt {
			t.Fatalf("parse %s: got %s", dt, parsed)
		}
	}
	if _, err := ParseDataType("COMPLEX128"); err == nil {
		t.Fatal("expected error for unknown datatype")
	}
}

func TestEncodeDecodeUint32(t *testing.T) {
	data, err := EncodeTensorData(Uint32, []any{float64(7), float64(8)})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("len=%d", len(data))
	}
	values, err := DecodeTensorData(Uint32, data, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values[0].(uint32) != 7 || values[1].(uint32) != 8 {
		t.Fatalf("values=%v", values)
	}
}

func TestEncodeDecodeFp32(t *testing.T) {
	data, err := EncodeTensorData(Fp32, []any{1.5, -2.25})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	values, err := DecodeTensorData(Fp32, data, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values[0].(float32) != 1.5 || values[1].(float32) != -2.25 {
		t.Fatalf("values=%v", values)
	}
}

func TestEncodeDecodeString(t *testing.T) {
	data, err := EncodeTensorData(String, []any{"hello", "world"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	values, err := DecodeTensorData(String, data, 2)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values[0].(string) != "hello" || values[1].(string) != "world" {
		t.Fatalf("values=%v", values)
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	for _, v := range []float32{0, 1, -1, 0.5, 65504, -0.25} {
		bits := float16FromFloat32(v)
		back := float16ToFloat32(bits)
		if back != v {
			t.Errorf("f16 roundtrip %v: got %v", v, back)
		}
	}
	inf := float16ToFloat32(float16FromFloat32(float32(math.Inf(1))))
	if !math.IsInf(float64(inf), 1) {
		t.Errorf("inf roundtrip: got %v", inf)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	if _, err := DecodeTensorData(Uint32, []byte{1, 2}, 1); err == nil {
		t.Fatal("expected error for short buffer")
	}
}

func TestEncodeRejectsNonNumeric(t *testing.T) {
	if _, err := EncodeTensorData(Uint32, []any{"seven"}); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestTensorElements(t *testing.T) {
	tensor := Tensor{Name: "x", Shape: []int64{2, 3, 4}, Datatype: Fp32}
	if tensor.Elements() != 24 {
		t.Fatalf("elements=%d", tensor.Elements())
	}
	if tensor.ByteSize() != 96 {
		t.Fatalf("bytesize=%d", tensor.ByteSize())
	}
	scalar := Tensor{Name: "s", Datatype: Uint8}
	if scalar.Elements() != 1 {
		t.Fatalf("scalar elements=%d", scalar.Elements())
	}
}
