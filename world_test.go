package mrkit

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const tick = 1.0 / 60

type storeRecorder struct {
	events []InteractionEvent
}

func (s *storeRecorder) EmitEvent(ev InteractionEvent) {
	s.events = append(s.events, ev)
}

func newTarget(w *World, name string, pos mgl64.Vec3, log *[]string) *Node {
	n := NewShapeNode(name, ShapeSphere{Radius: 1})
	n.Target = newRecorder(name, log)
	n.SetPosition(pos)
	w.Root().AddChild(n)
	return n
}

func TestAddPointerAttachesAndRegisters(t *testing.T) {
	w := NewWorld()
	p := NewPointer("p")
	w.AddPointer(p)
	w.AddPointer(p)

	if p.Node().Parent != w.Root() {
		t.Error("parentless pointer node should be attached to root")
	}
	if got := w.Pointers(); len(got) != 1 || got[0] != p {
		t.Errorf("Pointers = %v, want [p]", got)
	}
	if !p.Active() || len(p.AllPointers()) != 1 {
		t.Error("pointer should be active and see the registry")
	}
}

func TestAddPointerKeepsParent(t *testing.T) {
	w := NewWorld()
	hand := NewNode("hand")
	w.Root().AddChild(hand)
	p := NewPointer("tip")
	hand.AddChild(p.Node())
	w.AddPointer(p)
	if p.Node().Parent != hand {
		t.Error("pointer node should stay under its hand")
	}
}

func TestPointersSnapshot(t *testing.T) {
	w := NewWorld()
	w.AddPointer(NewPointer("a"))
	snap := w.Pointers()
	w.AddPointer(NewPointer("b"))
	if len(snap) != 1 {
		t.Errorf("snapshot changed to %d entries", len(snap))
	}
}

func TestOverlapStartsAndEndsTouch(t *testing.T) {
	w := NewWorld()
	var log []string
	newTarget(w, "a", mgl64.Vec3{0, 0, 0}, &log)
	newTarget(w, "b", mgl64.Vec3{20, 0, 0}, &log)
	p := NewPointer("p")
	w.AddPointer(p)

	w.UpdateDelta(tick)
	assertLog(t, log, "a:touch-start")

	// Leave a and enter b in the same update: end fires first.
	p.Node().SetPosition(mgl64.Vec3{20, 0, 0})
	w.UpdateDelta(tick)
	assertLog(t, log, "a:touch-start", "a:touch-end", "b:touch-start")

	// Staying put fires nothing.
	w.UpdateDelta(tick)
	if len(log) != 3 {
		t.Errorf("steady state fired %v", log[3:])
	}
}

func TestOverlapSkipsInvisibleAndNonCollidable(t *testing.T) {
	w := NewWorld()
	var log []string
	hidden := newTarget(w, "hidden", mgl64.Vec3{}, &log)
	hidden.Visible = false
	ghost := newTarget(w, "ghost", mgl64.Vec3{}, &log)
	ghost.Collidable = false

	w.AddPointer(NewPointer("p"))
	w.UpdateDelta(tick)
	if len(log) != 0 {
		t.Errorf("expected no touches, got %v", log)
	}
}

func TestOverlapIgnoresOwnHand(t *testing.T) {
	w := NewWorld()
	var log []string
	hand := newTarget(w, "hand", mgl64.Vec3{}, &log)
	p := NewPointer("tip")
	hand.AddChild(p.Node())
	w.AddPointer(p)

	w.UpdateDelta(tick)
	if len(log) != 0 {
		t.Errorf("pointer should not touch its own ancestry, got %v", log)
	}
}

func TestOverlapChildShapeResolvesToParentTarget(t *testing.T) {
	w := NewWorld()
	var log []string
	panel := NewNode("panel")
	panel.Target = newRecorder("panel", &log)
	w.Root().AddChild(panel)
	left := NewShapeNode("left", ShapeSphere{Radius: 1})
	right := NewShapeNode("right", ShapeSphere{Radius: 1})
	right.SetPosition(mgl64.Vec3{1, 0, 0})
	panel.AddChild(left)
	panel.AddChild(right)

	p := NewPointer("p")
	w.AddPointer(p)
	w.UpdateDelta(tick)
	// Both parts overlap but the panel is touched once.
	assertLog(t, log, "panel:touch-start")

	// Leaving one part ends the touch on the shared target.
	p.Node().SetPosition(mgl64.Vec3{2.5, 0, 0})
	w.UpdateDelta(tick)
	assertLog(t, log, "panel:touch-start", "panel:touch-end")
}

func TestOverlapReleasesTargetWhenShapeGoes(t *testing.T) {
	tests := []struct {
		name   string
		remove func(part *Node)
	}{
		{"dispose", func(part *Node) { part.Dispose() }},
		{"detach", func(part *Node) { part.RemoveFromParent() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			panel := NewNode("panel")
			w.Root().AddChild(panel)
			in := NewInteractable(panel)
			part := NewShapeNode("part", ShapeSphere{Radius: 1})
			panel.AddChild(part)

			p := NewPointer("p")
			w.AddPointer(p)
			w.UpdateDelta(tick)
			if !p.IsTouching(panel) || !in.IsHovered() {
				t.Fatal("panel should be touched through its part")
			}

			tt.remove(part)
			for i := 0; i < 3; i++ {
				w.UpdateDelta(tick)
			}
			if p.IsTouching(panel) {
				t.Error("panel still touched after its only shape went away")
			}
			if in.IsHovered() {
				t.Error("panel still hovered after its only shape went away")
			}
			if len(p.overlaps) != 0 || len(p.overlapTargets) != 0 {
				t.Errorf("overlaps = %v, want none", p.overlaps)
			}
		})
	}
}

func TestRemovePointerReleasesTouches(t *testing.T) {
	w := NewWorld()
	var log []string
	t1 := newTarget(w, "t1", mgl64.Vec3{}, &log)
	t2 := newTarget(w, "t2", mgl64.Vec3{0.5, 0, 0}, &log)
	p := NewPointer("p")
	w.AddPointer(p)
	w.UpdateDelta(tick)
	p.SetPinched(true)
	log = nil

	w.RemovePointer(p)
	assertLog(t, log, "t1:pinch-end", "t1:touch-end", "t2:pinch-end", "t2:touch-end")
	if p.IsTouching(t1) || p.IsTouching(t2) {
		t.Error("touched set should be empty")
	}
	if p.Active() || w.registry.Contains(p) {
		t.Error("pointer should be unregistered")
	}

	// Removing again is a no-op.
	log = nil
	w.RemovePointer(p)
	if len(log) != 0 {
		t.Errorf("second removal fired %v", log)
	}
}

func TestDisposedPointerNodeIsRemoved(t *testing.T) {
	w := NewWorld()
	var log []string
	newTarget(w, "t", mgl64.Vec3{}, &log)
	p := NewPointer("p")
	w.AddPointer(p)
	w.UpdateDelta(tick)

	p.Node().Dispose()
	w.UpdateDelta(tick)
	assertLog(t, log, "t:touch-start", "t:touch-end")
	if p.Active() {
		t.Error("pointer with a disposed node should be deactivated")
	}
}

func TestDisposedTargetDropsSilently(t *testing.T) {
	w := NewWorld()
	var log []string
	target := newTarget(w, "t", mgl64.Vec3{}, &log)
	p := NewPointer("p")
	w.AddPointer(p)
	w.UpdateDelta(tick)

	target.Dispose()
	w.UpdateDelta(tick)
	assertLog(t, log, "t:touch-start")
	if len(p.TouchedTargets()) != 0 || len(p.overlaps) != 0 {
		t.Error("expired entries should be pruned")
	}
}

func TestWorldTouchHandlers(t *testing.T) {
	w := NewWorld()
	var log []string
	target := newTarget(w, "t", mgl64.Vec3{}, &log)
	target.EntityID = 5
	store := &storeRecorder{}
	w.SetEntityStore(store)

	var types []EventType
	record := func(ctx TouchContext) {
		if ctx.Node != target || ctx.EntityID != 5 {
			t.Errorf("bad context %+v", ctx)
		}
		types = append(types, ctx.Type)
	}
	w.OnTouchStarted(record)
	w.OnTouchEnded(record)
	w.OnPinchStarted(record)
	h := w.OnPinchEnded(record)

	p := NewPointer("p")
	w.AddPointer(p)
	w.UpdateDelta(tick)
	p.SetPinched(true)
	h.Remove()
	w.RemovePointer(p)

	want := []EventType{EventTouchStarted, EventPinchStarted, EventTouchEnded}
	if len(types) != len(want) {
		t.Fatalf("types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("types[%d] = %v, want %v", i, types[i], want[i])
		}
	}
	// The store sees every event, including the pinch end.
	if len(store.events) != 4 {
		t.Fatalf("store got %d events, want 4", len(store.events))
	}
	if store.events[0].PointerID != p.ID() {
		t.Errorf("PointerID = %d, want %d", store.events[0].PointerID, p.ID())
	}
}

func TestWorldHoverHandlersAndStore(t *testing.T) {
	w := NewWorld()
	n := NewShapeNode("panel", ShapeSphere{Radius: 1})
	n.EntityID = 3
	w.Root().AddChild(n)
	NewInteractable(n)
	store := &storeRecorder{}
	w.SetEntityStore(store)

	var starts, ends []bool
	w.OnHoverStarted(func(ctx HoverContext) { starts = append(starts, ctx.WasHovered) })
	w.OnHoverEnded(func(ctx HoverContext) { ends = append(ends, ctx.IsHovered) })

	p, q := NewPointer("p"), NewPointer("q")
	w.AddPointer(p)
	w.AddPointer(q)
	w.UpdateDelta(tick)
	w.RemovePointer(p)
	w.RemovePointer(q)

	if len(starts) != 2 || starts[0] || !starts[1] {
		t.Errorf("starts = %v, want [false true]", starts)
	}
	if len(ends) != 2 || !ends[0] || ends[1] {
		t.Errorf("ends = %v, want [true false]", ends)
	}

	var hover []InteractionEvent
	for _, ev := range store.events {
		if ev.Type == EventHoverStarted || ev.Type == EventHoverEnded {
			hover = append(hover, ev)
		}
	}
	if len(hover) != 4 || hover[0].Others || !hover[1].Others || !hover[2].Others || hover[3].Others {
		t.Errorf("hover events = %+v", hover)
	}
}

func TestEmitSkipsZeroEntity(t *testing.T) {
	w := NewWorld()
	var log []string
	newTarget(w, "t", mgl64.Vec3{}, &log)
	store := &storeRecorder{}
	w.SetEntityStore(store)
	w.AddPointer(NewPointer("p"))
	w.UpdateDelta(tick)
	if len(store.events) != 0 {
		t.Errorf("untracked node emitted %v", store.events)
	}
}

func TestUpdateFuncRunsFirst(t *testing.T) {
	w := NewWorld()
	var log []string
	newTarget(w, "t", mgl64.Vec3{10, 0, 0}, &log)
	p := NewPointer("p")
	w.AddPointer(p)
	w.SetUpdateFunc(func() error {
		p.Node().SetPosition(mgl64.Vec3{10, 0, 0})
		return nil
	})
	if err := w.UpdateDelta(tick); err != nil {
		t.Fatal(err)
	}
	assertLog(t, log, "t:touch-start")
}

func TestUpdateFuncErrorStops(t *testing.T) {
	w := NewWorld()
	boom := errors.New("boom")
	w.SetUpdateFunc(func() error { return boom })
	if err := w.UpdateDelta(tick); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestCallbackRemovingPointerDuringOverlap(t *testing.T) {
	w := NewWorld()
	p, q := NewPointer("p"), NewPointer("q")
	n := NewShapeNode("trap", ShapeSphere{Radius: 1})
	n.Target = &TargetFuncs{OnTouchStarted: func(*Pointer) { w.RemovePointer(q) }}
	w.Root().AddChild(n)
	w.AddPointer(p)
	w.AddPointer(q)

	w.UpdateDelta(tick)
	if q.Active() || len(q.TouchedTargets()) != 0 {
		t.Error("q should have been removed before it was processed")
	}
	if !p.IsTouching(n) {
		t.Error("p should touch the trap")
	}
}

func TestFollowAndButtonRegistration(t *testing.T) {
	w := NewWorld()
	f := NewFollow(NewNode("panel"), w.NewCamera())
	w.AddFollow(f)
	w.AddFollow(f)
	if len(w.follows) != 1 {
		t.Errorf("follows = %d, want 1", len(w.follows))
	}
	w.RemoveFollow(f)
	if len(w.follows) != 0 {
		t.Error("follow should be removed")
	}

	b := NewPressableButton(NewNode("button"))
	w.AddButton(b)
	w.AddButton(b)
	if len(w.buttons) != 1 || b.world != w {
		t.Error("button should be registered once")
	}
	w.RemoveButton(b)
	if len(w.buttons) != 0 || b.world != nil {
		t.Error("button should be unregistered")
	}

	cam := w.Cameras()[0]
	w.RemoveCamera(cam)
	if len(w.Cameras()) != 0 {
		t.Error("camera should be removed")
	}
}

func TestRegistry(t *testing.T) {
	var r PointerRegistry
	a, b := NewPointer("a"), NewPointer("b")
	if !r.add(a) || r.add(a) || !r.add(b) {
		t.Fatal("add should reject duplicates only")
	}
	if r.Len() != 2 || !r.Contains(b) {
		t.Error("registry should hold a and b")
	}
	if !r.remove(a) || r.remove(a) {
		t.Error("remove should succeed once")
	}
	if all := r.All(); len(all) != 1 || all[0] != b {
		t.Errorf("All = %v, want [b]", all)
	}
}
