package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Job hooks
	j := NoopJobHooks{}
	j.OnJobStart(ctx, "interface", 32)
	j.OnJobComplete(ctx, "interface", 32, 120, 1, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "tile")
	c.OnCacheMiss(ctx, "tile")
	c.OnCacheSet(ctx, "tile", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Jobs().(NoopJobHooks); !ok {
		t.Error("Jobs() should return NoopJobHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customJobs := &testJobHooks{}
	SetJobHooks(customJobs)
	if Jobs() != customJobs {
		t.Error("SetJobHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Jobs().(NoopJobHooks); !ok {
		t.Error("Reset() should restore NoopJobHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testJobHooks{}
	SetJobHooks(custom)

	// Setting nil should be ignored
	SetJobHooks(nil)

	if Jobs() != custom {
		t.Error("SetJobHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testJobHooks struct{ NoopJobHooks }
type testCacheHooks struct{ NoopCacheHooks }
