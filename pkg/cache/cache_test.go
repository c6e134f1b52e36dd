package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/netcanvas/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := FrameKeyOpts{Format: "png", Width: 800, Height: 600, Brush: true, Tooltips: true, Zoom: true}

	// FrameKey should include options in hash
	fk1 := k.FrameKey("hash123", base)
	other := base
	other.Width = 1024
	if fk1 == k.FrameKey("hash123", other) {
		t.Error("Different FrameKeyOpts should produce different keys")
	}
	scripted := base
	scripted.ScriptHash = Hash([]byte("[]"))
	if fk1 == k.FrameKey("hash123", scripted) {
		t.Error("Event scripts should change the frame key")
	}
	if fk1 != k.FrameKey("hash123", base) {
		t.Error("FrameKey should be deterministic")
	}
	if fk1 == k.FrameKey("hash456", base) {
		t.Error("Different datasets should produce different keys")
	}

	// ExportKey
	ek1 := k.ExportKey("hash123", ExportKeyOpts{Format: "dot"})
	ek2 := k.ExportKey("hash123", ExportKeyOpts{Format: "svg"})
	if ek1 == ek2 {
		t.Error("Different ExportKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "v1.0.0:")
	key := scoped.FrameKey("hash", FrameKeyOpts{})
	if !strings.HasPrefix(key, "v1.0.0:frame:") {
		t.Errorf("ScopedKeyer FrameKey should be prefixed: %s", key)
	}
	if key == NewScopedKeyer(nil, "v1.0.1:").FrameKey("hash", FrameKeyOpts{}) {
		t.Error("Different scopes should produce different keys")
	}
}

func TestKeyType(t *testing.T) {
	k := NewScopedKeyer(nil, "dev:")
	tests := []struct {
		key  string
		want string
	}{
		{k.FrameKey("h", FrameKeyOpts{}), "frame"},
		{k.ExportKey("h", ExportKeyOpts{}), "export"},
		{"misc", "other"},
	}
	for _, tt := range tests {
		if got := KeyType(tt.key); got != tt.want {
			t.Errorf("KeyType(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "frame:a"); err != nil || hit {
		t.Fatalf("empty cache Get = %v, %v", hit, err)
	}

	if err := c.Set(ctx, "frame:a", []byte("png"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "frame:a")
	if err != nil || !hit || string(data) != "png" {
		t.Fatalf("Get = %q, %v, %v; want png hit", data, hit, err)
	}

	if err := c.Delete(ctx, "frame:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "frame:a"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "frame:a"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)
	path := fc.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry Get = %v, %v; want silent miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}

	if err := c.Set(ctx, "k2", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := fc.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k2"); hit {
		t.Error("Clear should remove every entry")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestFileCacheHooks(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	_, _, _ = c.Get(ctx, "frame:x")
	_ = c.Set(ctx, "frame:x", []byte("1"), 0)
	_, _, _ = c.Get(ctx, "frame:x")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %d hits %d misses %d sets, want 1/1/1", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	if got := DefaultDir(); got != "/tmp/xdg-cache/netcanvas" {
		t.Errorf("DefaultDir() = %q", got)
	}
}

func TestFileCacheCompressesEntries(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)
	payload := []byte(strings.Repeat("frame", 1000))
	if err := c.Set(ctx, "big", payload, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	info, err := os.Stat(fc.path("big"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() >= int64(len(payload)) {
		t.Errorf("entry size = %d, want less than raw %d", info.Size(), len(payload))
	}
	got, hit, err := c.Get(ctx, "big")
	if err != nil || !hit || string(got) != string(payload) {
		t.Errorf("Get = %d bytes, %v, %v; want round trip", len(got), hit, err)
	}

	// Valid JSON whose data is not a snappy block is treated as corrupt.
	path := fc.path("raw")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"data":"/////w=="}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "raw"); hit || err != nil {
		t.Errorf("undecodable entry Get = %v, %v; want silent miss", hit, err)
	}
}
