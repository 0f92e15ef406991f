package mrkit

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// World is the top-level object that owns the node tree, the pointer
// registry, cameras, follows, buttons and scene-level event handlers.
type World struct {
	root  *Node
	store EntityStore
	debug bool

	cameras []*Camera
	follows []*Follow
	buttons []*PressableButton

	registry PointerRegistry
	handlers handlerRegistry

	// reused buffers for the overlap pass
	shapeBuf     []*Node
	overlapBuf   []*Node
	prevOverlaps []*Node
	prevTargets  []*Node

	updateFunc func() error
	frame      uint64
}

// NewWorld creates a new world with a pre-created root node.
func NewWorld() *World {
	return &World{root: NewNode("root")}
}

// Root returns the world's root node.
func (w *World) Root() *Node {
	return w.root
}

// SetUpdateFunc sets a callback run at the start of every Update, before
// transforms, overlaps and follows are evaluated. Use it to move hands and
// heads from input.
func (w *World) SetUpdateFunc(fn func() error) {
	w.updateFunc = fn
}

// Update advances the world by one ebiten tick.
func (w *World) Update() error {
	return w.UpdateDelta(1.0 / float64(ebiten.TPS()))
}

// UpdateDelta advances the world by dt seconds: user update, transforms,
// cameras, pointer cleanup, overlaps, buttons, follows.
func (w *World) UpdateDelta(dt float64) error {
	w.frame++
	if w.updateFunc != nil {
		if err := w.updateFunc(); err != nil {
			return err
		}
	}

	var stats debugStats
	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	updateWorldTransform(w.root, mgl64.Ident4(), mgl64.QuatIdent(), false)
	for _, cam := range w.cameras {
		cam.update(float32(dt))
	}
	w.removeDisposedPointers()
	w.processOverlaps()

	if w.debug {
		stats.overlapTime = time.Since(t0)
		t0 = time.Now()
	}

	for _, b := range w.buttons {
		b.Update(dt)
	}
	for _, f := range w.follows {
		f.Update(dt)
	}

	if w.debug {
		stats.solveTime = time.Since(t0)
		stats.pointerCount = w.registry.Len()
		stats.followCount = len(w.follows)
		w.debugLog(stats)
	}
	return nil
}

// --- Pointers ---

// AddPointer activates p in this world. If p's node has no parent it is
// attached to the root. No-op if p is already active here.
func (w *World) AddPointer(p *Pointer) {
	if p.world == w {
		return
	}
	if p.world != nil {
		p.world.RemovePointer(p)
	}
	if p.node.Parent == nil && p.node != w.root {
		w.root.AddChild(p.node)
	}
	w.registry.add(p)
	p.world = w
}

// RemovePointer releases every touch and pinch held by p, synthesizing the
// stop events, then unregisters it. No-op if p is not active here.
func (w *World) RemovePointer(p *Pointer) {
	if p.world != w {
		return
	}
	p.StopAllTouching()
	w.registry.remove(p)
	p.world = nil
}

// Pointers returns a snapshot of the registered pointers.
func (w *World) Pointers() []*Pointer {
	return w.registry.All()
}

// removeDisposedPointers deactivates pointers whose node was disposed.
func (w *World) removeDisposedPointers() {
	for _, p := range w.registry.All() {
		if p.node.IsDisposed() {
			w.RemovePointer(p)
		}
	}
}

// --- Cameras ---

// NewCamera creates a camera and adds it to the world.
func (w *World) NewCamera() *Camera {
	cam := NewCamera()
	w.cameras = append(w.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the world.
func (w *World) RemoveCamera(cam *Camera) {
	for i, c := range w.cameras {
		if c == cam {
			w.cameras = append(w.cameras[:i], w.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the world's camera list. The returned slice MUST NOT be mutated.
func (w *World) Cameras() []*Camera {
	return w.cameras
}

// --- Follows and buttons ---

// AddFollow registers f to be updated every tick.
func (w *World) AddFollow(f *Follow) {
	for _, g := range w.follows {
		if g == f {
			return
		}
	}
	w.follows = append(w.follows, f)
}

// RemoveFollow stops updating f. The owner keeps its last pose.
func (w *World) RemoveFollow(f *Follow) {
	for i, g := range w.follows {
		if g == f {
			w.follows = append(w.follows[:i], w.follows[i+1:]...)
			return
		}
	}
}

// AddButton registers b to be updated every tick.
func (w *World) AddButton(b *PressableButton) {
	if b.world == w {
		return
	}
	b.world = w
	w.buttons = append(w.buttons, b)
}

// RemoveButton stops updating b.
func (w *World) RemoveButton(b *PressableButton) {
	for i, c := range w.buttons {
		if c == b {
			w.buttons = append(w.buttons[:i], w.buttons[i+1:]...)
			b.world = nil
			return
		}
	}
}

// --- Scene-level event registration ---

// OnTouchStarted registers a callback for every touch start in the world.
func (w *World) OnTouchStarted(fn func(TouchContext)) CallbackHandle {
	return w.handlers.addTouch(EventTouchStarted, fn)
}

// OnTouchEnded registers a callback for every touch end in the world.
func (w *World) OnTouchEnded(fn func(TouchContext)) CallbackHandle {
	return w.handlers.addTouch(EventTouchEnded, fn)
}

// OnPinchStarted registers a callback for every pinch start on a touched target.
func (w *World) OnPinchStarted(fn func(TouchContext)) CallbackHandle {
	return w.handlers.addTouch(EventPinchStarted, fn)
}

// OnPinchEnded registers a callback for every pinch end on a touched target.
func (w *World) OnPinchEnded(fn func(TouchContext)) CallbackHandle {
	return w.handlers.addTouch(EventPinchEnded, fn)
}

// OnHoverStarted registers a callback for hover starts on any interactable.
func (w *World) OnHoverStarted(fn func(HoverContext)) CallbackHandle {
	return w.handlers.addHover(EventHoverStarted, fn)
}

// OnHoverEnded registers a callback for hover ends on any interactable.
func (w *World) OnHoverEnded(fn func(HoverContext)) CallbackHandle {
	return w.handlers.addHover(EventHoverEnded, fn)
}

// OnButtonPressed registers a callback for presses of buttons in this world.
func (w *World) OnButtonPressed(fn func(ButtonContext)) CallbackHandle {
	return w.handlers.addButton(EventButtonPressed, fn)
}

// OnButtonReleased registers a callback for releases of buttons in this world.
func (w *World) OnButtonReleased(fn func(ButtonContext)) CallbackHandle {
	return w.handlers.addButton(EventButtonReleased, fn)
}

// SetEntityStore sets the optional ECS bridge.
func (w *World) SetEntityStore(store EntityStore) {
	w.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, deep trees are reported, and interaction transitions and
// per-frame timing stats are logged to stderr.
func (w *World) SetDebugMode(enabled bool) {
	w.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set World debug flag so that node
// operations (which lack a World pointer) can check it cheaply.
var globalDebug bool

// --- Event dispatch ---

func (w *World) fireTouch(ev EventType, p *Pointer, n *Node) {
	ctx := TouchContext{
		Type:     ev,
		Pointer:  p,
		Node:     n,
		Target:   n.Target,
		EntityID: n.EntityID,
		Position: p.Position(),
	}
	if w.debug {
		w.debugEvent(ev, p, n.Name)
	}
	dispatch(w.handlers.touchHandlers(ev), ctx)
	w.emit(InteractionEvent{
		Type:      ev,
		EntityID:  n.EntityID,
		PointerID: p.ID(),
		Position:  ctx.Position,
	})
}

func (w *World) fireHover(ctx HoverContext) {
	n := ctx.Interactable.node
	if w.debug {
		w.debugEvent(ctx.Type, ctx.Pointer, n.Name)
	}
	others := ctx.WasHovered
	if ctx.Type == EventHoverEnded {
		dispatch(w.handlers.hoverEnded, ctx)
		others = ctx.IsHovered
	} else {
		dispatch(w.handlers.hoverStarted, ctx)
	}
	w.emit(InteractionEvent{
		Type:      ctx.Type,
		EntityID:  n.EntityID,
		PointerID: ctx.Pointer.ID(),
		Position:  ctx.Pointer.Position(),
		Others:    others,
	})
}

func (w *World) fireButton(ctx ButtonContext) {
	n := ctx.Button.node
	var pointerID uint32
	var pos mgl64.Vec3
	if ctx.Pointer != nil {
		pointerID = ctx.Pointer.ID()
		pos = ctx.Pointer.Position()
	}
	if w.debug {
		w.debugEvent(ctx.Type, ctx.Pointer, n.Name)
	}
	if ctx.Type == EventButtonPressed {
		dispatch(w.handlers.buttonPressed, ctx)
	} else {
		dispatch(w.handlers.buttonReleased, ctx)
	}
	w.emit(InteractionEvent{
		Type:      ctx.Type,
		EntityID:  n.EntityID,
		PointerID: pointerID,
		Position:  pos,
		Depth:     ctx.Depth,
	})
}

// emit forwards to the ECS store. Nodes without an EntityID are skipped.
func (w *World) emit(ev InteractionEvent) {
	if w.store == nil || ev.EntityID == 0 {
		return
	}
	w.store.EmitEvent(ev)
}
