package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := TileKey([]byte("<svg/>"), 64, 4)

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, key, []byte("tile-bytes"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v, want hit", ok, err)
	}
	if string(data) != "tile-bytes" {
		t.Errorf("Get() = %q, want tile-bytes", data)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Error("Get() after Delete() still hits")
	}

	// Deleting an absent key is not an error.
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry still hits")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get() = ok=%v err=%v, want permanent miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestTileKey(t *testing.T) {
	a := TileKey([]byte("<svg>a</svg>"), 64, 4)
	b := TileKey([]byte("<svg>a</svg>"), 64, 4)
	if a != b {
		t.Error("identical inputs produced different keys")
	}
	if !strings.HasPrefix(a, "tile:") {
		t.Errorf("key %q missing tile: prefix", a)
	}

	variants := []string{
		TileKey([]byte("<svg>b</svg>"), 64, 4), // different content
		TileKey([]byte("<svg>a</svg>"), 32, 4), // different size
		TileKey([]byte("<svg>a</svg>"), 64, 1), // different supersample
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d collided with base key", i)
		}
	}
}

func TestHashStable(t *testing.T) {
	// sha256("") — pins the hex encoding and hash choice.
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Hash(nil); got != empty {
		t.Errorf("Hash(nil) = %s, want %s", got, empty)
	}
}
