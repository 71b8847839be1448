package cache

import (
	"context"
	"testing"
	"time"
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

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("unexpected hit before Set")
	}

	// Round trip
	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get = %v, hit=%v", err, hit)
	}
	if string(data) != "value" {
		t.Errorf("data = %q", data)
	}

	// Delete
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// A negative TTL writes an already-expired entry.
	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should be a miss")
	}

	// A positive TTL that has not elapsed is still a hit.
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Error("unexpired entry should be a hit")
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

func TestArtifactKey(t *testing.T) {
	k := NewDefaultKeyer()
	opts := ArtifactKeyOpts{Format: "svg", Grid: "us-states", LinkMode: "both"}

	// Deterministic
	if k.ArtifactKey("hash1", opts) != k.ArtifactKey("hash1", opts) {
		t.Error("ArtifactKey should be deterministic")
	}

	// Sensitive to the data hash and to every option that changes output
	if k.ArtifactKey("hash1", opts) == k.ArtifactKey("hash2", opts) {
		t.Error("Different data should produce different keys")
	}
	png := opts
	png.Format = "png"
	if k.ArtifactKey("hash1", opts) == k.ArtifactKey("hash1", png) {
		t.Error("Different formats should produce different keys")
	}
	linked := opts
	linked.LinkMode = "none"
	if k.ArtifactKey("hash1", opts) == k.ArtifactKey("hash1", linked) {
		t.Error("Different link modes should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "user:1:")
	opts := ArtifactKeyOpts{Format: "svg"}

	got := scoped.ArtifactKey("hash", opts)
	want := "user:1:" + base.ArtifactKey("hash", opts)
	if got != want {
		t.Errorf("scoped key = %q, want %q", got, want)
	}
}
