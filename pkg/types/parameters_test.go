package types

import (
	"encoding/json"
	"testing"
)

func TestParameterMapPutGet(t *testing.T) {
	p := NewParameterMap()
	p.Put("batch_size", 4)
	p.Put("share", true)
	p.Put("scale", 0.5)
	p.Put("model", "echo")

	if !p.Has("batch_size") || p.GetInt("batch_size") != 4 {
		t.Fatalf("batch_size=%d", p.GetInt("batch_size"))
	}
	if !p.GetBool("share") {
		t.Fatal("share should be true")
	}
	if p.GetFloat("scale") != 0.5 {
		t.Fatalf("scale=%f", p.GetFloat("scale"))
	}
	if p.GetString("model") != "echo" {
		t.Fatalf("model=%s", p.GetString("model"))
	}
	if p.Has("missing") || p.GetInt("missing") != 0 {
		t.Fatal("missing key should be absent and zero")
	}
}

func TestParameterMapReplaces(t *testing.T) {
	p := NewParameterMap()
	p.Put("k", 1)
	p.Put("k", 2)
	if p.GetInt("k") != 2 || p.Len() != 1 {
		t.Fatalf("k=%d len=%d", p.GetInt("k"), p.Len())
	}
}

func TestParameterMapJSONRoundTrip(t *testing.T) {
	p := NewParameterMap()
	p.Put("n", 3)
	p.Put("name", "echo")
	p.Put("flag", true)

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ParameterMap
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.GetInt("n") != 3 || back.GetString("name") != "echo" || !back.GetBool("flag") {
		t.Fatalf("roundtrip lost values: %s", raw)
	}
}

func TestParameterMapMerge(t *testing.T) {
	a := NewParameterMap()
	a.Put("worker", "xmodel")
	a.Put("keep", 1)
	b := NewParameterMap()
	b.Put("worker", "echo")
	a.Merge(b)
	if a.GetString("worker") != "echo" || a.GetInt("keep") != 1 {
		t.Fatalf("merge: worker=%s keep=%d", a.GetString("worker"), a.GetInt("keep"))
	}
	a.Merge(nil)
}

func TestNilParameterMapReads(t *testing.T) {
	var p *ParameterMap
	if p.Has("x") || p.GetInt("x") != 0 || p.GetString("x") != "" {
		t.Fatal("nil map reads should be zero values")
	}
}
