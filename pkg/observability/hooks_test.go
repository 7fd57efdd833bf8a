package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnComposeStart(ctx, 12, true)
	p.OnComposeComplete(ctx, 12, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "export", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/poster.{format}")
	h.OnResponse(ctx, "GET", "/poster.{format}", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
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

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)()

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestSetHooksRestore(t *testing.T) {
	Reset()
	defer Reset()

	outer := &testPipelineHooks{name: "outer"}
	inner := &testPipelineHooks{name: "inner"}
	SetPipelineHooks(outer)
	restore := SetPipelineHooks(inner)
	if Pipeline() != inner {
		t.Fatal("inner hooks not installed")
	}
	restore()
	if Pipeline() != outer {
		t.Error("restore should reinstall the previous hooks")
	}
}

func TestMultiPipeline(t *testing.T) {
	a, b := &countingHooks{}, &countingHooks{}
	m := MultiPipeline(a, b)
	ctx := context.Background()

	m.OnComposeStart(ctx, 4, true)
	m.OnComposeComplete(ctx, 4, time.Millisecond, nil)
	m.OnRenderStart(ctx, []string{"png"})
	m.OnRenderComplete(ctx, []string{"png"}, time.Millisecond, nil)

	for i, h := range []*countingHooks{a, b} {
		if h.events != 4 {
			t.Errorf("hooks %d saw %d events, want 4", i, h.events)
		}
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnComposeStart(ctx, 3, false)
	h.OnComposeComplete(ctx, 0, time.Millisecond, errors.New("boom"))
	h.OnCacheHit(ctx, "artifact")
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{"compose start", "layers=3", "compose failed", "boom", "cache hit", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct {
	NoopPipelineHooks
	name string
}

type countingHooks struct{ events int }

func (c *countingHooks) OnComposeStart(context.Context, int, bool)                    { c.events++ }
func (c *countingHooks) OnComposeComplete(context.Context, int, time.Duration, error) { c.events++ }
func (c *countingHooks) OnRenderStart(context.Context, []string)                      { c.events++ }
func (c *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	c.events++
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
