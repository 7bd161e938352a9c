package endpoints

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"inferd/internal/pool"
	"inferd/internal/worker"
	"inferd/pkg/types"
)

func newRegistry() *Registry {
	return New(pool.New(), zerolog.Nop())
}

func TestLoadUnload(t *testing.T) {
	r := newRegistry()
	name, err := r.Load("echo", types.NewParameterMap())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if name != "echo" {
		t.Fatalf("name=%s", name)
	}
	if !r.Ready("echo") {
		t.Fatal("echo should be ready")
	}
	r.Unload("echo")
	if r.Ready("echo") {
		t.Fatal("echo should be gone")
	}
	if len(r.List()) != 0 {
		t.Fatalf("list=%v", r.List())
	}
}

func TestLoadIsRefCounted(t *testing.T) {
	r := newRegistry()
	if _, err := r.Load("echo", types.NewParameterMap()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := r.Load("echo", types.NewParameterMap()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if r.Refs("echo") != 2 {
		t.Fatalf("refs=%d", r.Refs("echo"))
	}
	r.Unload("echo")
	if !r.Ready("echo") {
		t.Fatal("echo must survive the first unload")
	}
	r.Unload("echo")
	if r.Ready("echo") {
		t.Fatal("echo must be removed after the second unload")
	}
	// a third unload is a benign no-op
	r.Unload("echo")
}

func TestCanonicalNames(t *testing.T) {
	r := newRegistry()
	if _, err := r.Load("Echo", types.NewParameterMap()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !r.Ready("ECHO") || !r.Ready("echo") {
		t.Fatal("lookups should be case-insensitive")
	}
	r.Unload("eChO")
	if r.Ready("echo") {
		t.Fatal("unload should match canonically")
	}
}

func TestUnknownWorker(t *testing.T) {
	r := newRegistry()
	_, err := r.Load("no_such_worker", types.NewParameterMap())
	if !IsUnknownWorker(err) {
		t.Fatalf("err=%v", err)
	}
}

func TestWorkerParameterSelectsKernel(t *testing.T) {
	r := newRegistry()
	params := types.NewParameterMap()
	params.Put("worker", "echo")
	name, err := r.Load("resnet50", params)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if name != "resnet50" {
		t.Fatalf("name=%s", name)
	}
	meta, ok := r.Metadata("resnet50")
	if !ok || meta.Platform != "echo" {
		t.Fatalf("meta=%+v ok=%v", meta, ok)
	}
	r.Unload("resnet50")
}

func TestConcurrentLoadSingleInstantiation(t *testing.T) {
	r := newRegistry()
	const n = 4
	names := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name, err := r.Load("echo", types.NewParameterMap())
			if err != nil {
				t.Errorf("load: %v", err)
				return
			}
			names[i] = name
		}(i)
	}
	wg.Wait()
	for _, name := range names {
		if name != "echo" {
			t.Fatalf("names=%v", names)
		}
	}
	if r.Refs("echo") != n {
		t.Fatalf("refs=%d want %d", r.Refs("echo"), n)
	}
	w, ok := r.Get("echo")
	if !ok || w.State() != worker.Running {
		t.Fatal("single shared worker should be running")
	}
	for i := 0; i < n; i++ {
		r.Unload("echo")
	}
	if len(r.List()) != 0 {
		t.Fatalf("list=%v", r.List())
	}
}

func TestListSorted(t *testing.T) {
	r := newRegistry()
	_, _ = r.Load("echo", types.NewParameterMap())
	_, _ = r.Load("invertimage", types.NewParameterMap())
	list := r.List()
	if len(list) != 2 || list[0] != "echo" || list[1] != "invertimage" {
		t.Fatalf("list=%v", list)
	}
	r.Shutdown()
	if len(r.List()) != 0 {
		t.Fatal("shutdown should clear the registry")
	}
}
