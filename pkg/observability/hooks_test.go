package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Engine hooks
	e := NoopEngineHooks{}
	e.OnConstraintApplied("B right-of A", time.Millisecond, nil)
	e.OnContainerCreated("grid-A-B", ReasonWrap)
	e.OnGlobbed("grid-B-C", "D", "row")
	e.OnShifted("grid-A-B", "column")

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnCompileStart(ctx, 3)
	p.OnCompileComplete(ctx, 7, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "compile")
	c.OnCacheMiss(ctx, "compile")
	c.OnCacheSet(ctx, "compile", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customEngine := &testEngineHooks{}
	SetEngineHooks(customEngine)
	if Engine() != customEngine {
		t.Error("SetEngineHooks should set custom hooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testEngineHooks{}
	SetEngineHooks(custom)
	SetEngineHooks(nil)

	if Engine() != custom {
		t.Error("SetEngineHooks(nil) should be ignored")
	}

	Reset()
}

func TestRegister(t *testing.T) {
	t.Cleanup(Reset)

	all := &testAllHooks{}
	if n := Register(all); n != 3 {
		t.Errorf("Register(all hooks) = %d, want 3", n)
	}
	if Engine() != all || Pipeline() != all || Cache() != all {
		t.Error("Register should install every implemented interface")
	}

	Reset()
	cacheOnly := &testCacheHooks{}
	if n := Register(cacheOnly); n != 1 {
		t.Errorf("Register(cache hooks) = %d, want 1", n)
	}
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Register should leave unimplemented hooks alone")
	}
	if n := Register(nil); n != 0 {
		t.Errorf("Register(nil) = %d, want 0", n)
	}
}

// Test implementations
type testAllHooks struct {
	NoopEngineHooks
	NoopPipelineHooks
	NoopCacheHooks
}

type testEngineHooks struct{ NoopEngineHooks }
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
