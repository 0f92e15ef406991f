package mrkit

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func enableDebug(t *testing.T, w *World) {
	t.Helper()
	w.SetDebugMode(true)
	t.Cleanup(func() { w.SetDebugMode(false) })
}

func TestDebugCheckDisposedPanics(t *testing.T) {
	n := NewNode("gone")
	n.Dispose()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "gone") {
			t.Errorf("panic %q should name the node", msg)
		}
	}()
	debugCheckDisposed(n, "AddChild (child)")
}

func TestDebugModeAddDisposedChildPanics(t *testing.T) {
	w := NewWorld()
	enableDebug(t, w)
	n := NewNode("gone")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic in debug mode")
		}
	}()
	w.Root().AddChild(n)
}

func TestDebugModeOffAllowsDisposedChild(t *testing.T) {
	n := NewNode("gone")
	n.Dispose()
	NewNode("parent").AddChild(n)
}

func TestDebugModeUpdateRuns(t *testing.T) {
	w := NewWorld()
	enableDebug(t, w)
	var log []string
	newTarget(w, "t", mgl64.Vec3{}, &log)
	p := NewPointer("p")
	w.AddPointer(p)
	for i := 0; i < debugFrameInterval; i++ {
		if err := w.UpdateDelta(tick); err != nil {
			t.Fatal(err)
		}
	}
	w.RemovePointer(p)
	assertLog(t, log, "t:touch-start", "t:touch-end")
}

func TestDebugEventNilPointer(t *testing.T) {
	w := NewWorld()
	w.debugEvent(EventButtonReleased, nil, "button")
}

func TestDebugCheckTreeDepth(t *testing.T) {
	n := NewNode("n0")
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewNode("deep")
		n.AddChild(c)
		n = c
	}
	debugCheckTreeDepth(n) // warns, does not panic
}
