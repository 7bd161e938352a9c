package repository

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"inferd/pkg/types"
)

type fakeLoader struct {
	mu       sync.Mutex
	loaded   []string
	unloaded []string
}

func (f *fakeLoader) ModelLoad(name string, params *types.ParameterMap) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = append(f.loaded, name)
	return nil
}

func (f *fakeLoader) ModelUnload(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unloaded = append(f.unloaded, name)
	return nil
}

func (f *fakeLoader) snapshot() ([]string, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loaded...), append([]string(nil), f.unloaded...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestWatcherLoadsOnConfigCreate(t *testing.T) {
	repo := t.TempDir()
	loader := &fakeLoader{}
	w, err := NewWatcher(repo, loader, zerolog.Nop())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	modelDir := filepath.Join(repo, "echo")
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// give the watcher a beat to pick up the new directory watch
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(modelDir, "config.pbtxt"), []byte(`platform: "vitis_xmodel"`), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		loaded, _ := loader.snapshot()
		return len(loaded) == 1 && loaded[0] == "echo"
	})
}

func TestWatcherUnloadsOnConfigRemove(t *testing.T) {
	repo := t.TempDir()
	modelDir := filepath.Join(repo, "echo")
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(modelDir, "config.pbtxt")
	if err := os.WriteFile(configPath, []byte(`platform: "vitis_xmodel"`), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := &fakeLoader{}
	w, err := NewWatcher(repo, loader, zerolog.Nop())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.Remove(configPath); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		_, unloaded := loader.snapshot()
		return len(unloaded) == 1 && unloaded[0] == "echo"
	})
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	repo := t.TempDir()
	modelDir := filepath.Join(repo, "echo")
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		t.Fatal(err)
	}
	loader := &fakeLoader{}
	w, err := NewWatcher(repo, loader, zerolog.Nop())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(modelDir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(3 * settleDelay)
	loaded, unloaded := loader.snapshot()
	if len(loaded) != 0 || len(unloaded) != 0 {
		t.Fatalf("loaded=%v unloaded=%v", loaded, unloaded)
	}
}

func TestLoadExisting(t *testing.T) {
	repo := t.TempDir()
	for _, m := range []string{"a", "b"} {
		if err := os.MkdirAll(filepath.Join(repo, m), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	loader := &fakeLoader{}
	w, err := NewWatcher(repo, loader, zerolog.Nop())
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	w.LoadExisting()
	loaded, _ := loader.snapshot()
	if len(loaded) != 2 {
		t.Fatalf("loaded=%v", loaded)
	}
}
