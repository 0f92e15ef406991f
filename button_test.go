package mrkit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newButtonWorld() (*World, *PressableButton, *Pointer) {
	w := NewWorld()
	node := NewNode("button")
	w.Root().AddChild(node)
	b := NewPressableButton(node)
	w.AddButton(b)
	p := NewPointer("p")
	p.Node().SetPosition(mgl64.Vec3{-5, 0, 0})
	w.AddPointer(p)
	return w, b, p
}

func TestPressableButtonDefaults(t *testing.T) {
	n := NewNode("b")
	b := NewPressableButton(n)
	if n.Target != b {
		t.Error("button should be the node's target")
	}
	if b.Travel() != 2*defaultButtonExtent {
		t.Errorf("Travel = %v, want %v", b.Travel(), 2*defaultButtonExtent)
	}
	box, ok := n.Shape.(ShapeBox)
	if !ok {
		t.Fatalf("Shape = %T, want ShapeBox", n.Shape)
	}
	assertVec(t, "center", box.Center, mgl64.Vec3{defaultButtonExtent, 0, 0})
}

func TestPressableButtonKeepsExistingShape(t *testing.T) {
	s := ShapeSphere{Radius: 3}
	n := NewShapeNode("b", s)
	NewPressableButton(n)
	if n.Shape != s {
		t.Error("existing shape should be kept")
	}
}

func TestPressableButtonPressAndRelease(t *testing.T) {
	w, b, p := newButtonWorld()
	var pressed, released int
	var pressedBy *Pointer
	b.OnPressed(func(ctx ButtonContext) {
		pressed++
		pressedBy = ctx.Pointer
	})
	b.OnReleased(func(ctx ButtonContext) { released++ })

	var worldPressed int
	w.OnButtonPressed(func(ctx ButtonContext) { worldPressed++ })

	w.UpdateDelta(0.1)
	if b.Depth() != 0 || b.IsPressed() {
		t.Fatal("button should be at rest")
	}

	// Push past the pressed fraction (10 of 20).
	p.Node().SetPosition(mgl64.Vec3{12, 0, 0})
	w.UpdateDelta(0.1)
	assertNear(t, "depth", b.Depth(), 12)
	if !b.IsPressed() || pressed != 1 || pressedBy != p || worldPressed != 1 {
		t.Fatalf("pressed=%d worldPressed=%d by=%v", pressed, worldPressed, pressedBy)
	}

	// Holding does not fire again.
	w.UpdateDelta(0.1)
	if pressed != 1 {
		t.Errorf("pressed fired %d times", pressed)
	}

	// Pull out: the face recovers at 50 units/s.
	p.Node().SetPosition(mgl64.Vec3{-5, 0, 0})
	w.UpdateDelta(0.1)
	assertNear(t, "recovering depth", b.Depth(), 7)
	if !b.IsPressed() || released != 0 {
		t.Fatal("still above the released fraction")
	}
	w.UpdateDelta(0.1)
	assertNear(t, "recovered depth", b.Depth(), 2)
	if b.IsPressed() || released != 1 {
		t.Errorf("released=%d, want 1", released)
	}
}

func TestPressableButtonIgnoresPointersOutsideExtents(t *testing.T) {
	w, b, p := newButtonWorld()
	b.Extents = mgl64.Vec3{10, 2, 2}
	// Inside the collision box but beyond the push extents on Y.
	p.Node().SetPosition(mgl64.Vec3{12, 5, 0})
	w.UpdateDelta(0.1)
	if b.Depth() != 0 {
		t.Errorf("depth = %v, want 0", b.Depth())
	}
}

func TestPressableButtonMovesVisuals(t *testing.T) {
	w, b, p := newButtonWorld()
	visual := NewNode("visual")
	visual.SetPosition(mgl64.Vec3{0, 0, 1})
	w.Root().AddChild(visual)
	b.SetVisuals(visual)
	if b.Visuals() != visual {
		t.Fatal("Visuals should return the node")
	}

	p.Node().SetPosition(mgl64.Vec3{6, 0, 0})
	w.UpdateDelta(0.1)
	assertVec(t, "visual", visual.WorldPosition(), mgl64.Vec3{6, 0, 1})
}

func TestPressableButtonStoreEvents(t *testing.T) {
	w, b, p := newButtonWorld()
	b.Node().EntityID = 11
	store := &storeRecorder{}
	w.SetEntityStore(store)

	p.Node().SetPosition(mgl64.Vec3{15, 0, 0})
	w.UpdateDelta(0.1)

	var got *InteractionEvent
	for i := range store.events {
		if store.events[i].Type == EventButtonPressed {
			got = &store.events[i]
		}
	}
	if got == nil {
		t.Fatal("no button pressed event")
	}
	assertNear(t, "depth", got.Depth, 15)
	if got.PointerID != p.ID() {
		t.Errorf("PointerID = %d, want %d", got.PointerID, p.ID())
	}
}
