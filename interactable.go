package mrkit

import "github.com/go-gl/mathgl/mgl64"

// Interactable is a Target that keeps track of the pointers currently
// touching its node and collapses them into hover transitions: the first
// pointer to arrive and the last one to leave are distinguishable from the
// others through HoverContext.WasHovered and HoverContext.IsHovered.
type Interactable struct {
	node     *Node
	pointers []*Pointer
	handlers handlerRegistry
}

// NewInteractable creates an Interactable and installs it as node's Target.
func NewInteractable(node *Node) *Interactable {
	i := &Interactable{node: node}
	node.Target = i
	return i
}

// Node returns the node this interactable is attached to.
func (i *Interactable) Node() *Node {
	return i.node
}

// IsHovered reports whether any live pointer is hovering.
func (i *Interactable) IsHovered() bool {
	for _, p := range i.pointers {
		if p.Active() {
			return true
		}
	}
	return false
}

// ActivePointers returns the live pointers currently touching the
// interactable, in arrival order.
func (i *Interactable) ActivePointers() []*Pointer {
	out := make([]*Pointer, 0, len(i.pointers))
	for _, p := range i.pointers {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// OnHoverStarted registers a callback fired when a pointer starts hovering.
func (i *Interactable) OnHoverStarted(fn func(HoverContext)) CallbackHandle {
	return i.handlers.addHover(EventHoverStarted, fn)
}

// OnHoverEnded registers a callback fired when a pointer stops hovering.
func (i *Interactable) OnHoverEnded(fn func(HoverContext)) CallbackHandle {
	return i.handlers.addHover(EventHoverEnded, fn)
}

// OnPinchStarted registers a callback fired when a touching pointer pinches.
func (i *Interactable) OnPinchStarted(fn func(TouchContext)) CallbackHandle {
	return i.handlers.addTouch(EventPinchStarted, fn)
}

// OnPinchEnded registers a callback fired when a touching pointer releases
// its pinch or stops touching while pinched.
func (i *Interactable) OnPinchEnded(fn func(TouchContext)) CallbackHandle {
	return i.handlers.addTouch(EventPinchEnded, fn)
}

// HoverStarted adds p to the hovering set. The first pointer fires with
// WasHovered=false, later ones with WasHovered=true. Adding a pointer that
// is already present does nothing.
func (i *Interactable) HoverStarted(p *Pointer) {
	if i.indexOf(p) >= 0 {
		return
	}
	i.pointers = append(i.pointers, p)
	ctx := HoverContext{
		Type:         EventHoverStarted,
		Interactable: i,
		Pointer:      p,
		WasHovered:   len(i.pointers) > 1,
	}
	dispatch(i.handlers.hoverStarted, ctx)
	if p.world != nil {
		p.world.fireHover(ctx)
	}
}

// HoverEnded removes p from the hovering set. The last pointer fires with
// IsHovered=false, earlier ones with IsHovered=true. Removing an absent
// pointer does nothing.
func (i *Interactable) HoverEnded(p *Pointer) {
	idx := i.indexOf(p)
	if idx < 0 {
		return
	}
	copy(i.pointers[idx:], i.pointers[idx+1:])
	i.pointers[len(i.pointers)-1] = nil
	i.pointers = i.pointers[:len(i.pointers)-1]
	ctx := HoverContext{
		Type:         EventHoverEnded,
		Interactable: i,
		Pointer:      p,
		IsHovered:    len(i.pointers) > 0,
	}
	dispatch(i.handlers.hoverEnded, ctx)
	if p.world != nil {
		p.world.fireHover(ctx)
	}
}

// --- Target ---

// TouchStarted starts hovering for p.
func (i *Interactable) TouchStarted(p *Pointer) {
	i.HoverStarted(p)
}

// TouchEnded ends hovering for p.
func (i *Interactable) TouchEnded(p *Pointer) {
	i.HoverEnded(p)
}

// PinchStarted forwards to OnPinchStarted callbacks.
func (i *Interactable) PinchStarted(p *Pointer) {
	dispatch(i.handlers.pinchStarted, i.touchContext(EventPinchStarted, p))
}

// PinchEnded forwards to OnPinchEnded callbacks.
func (i *Interactable) PinchEnded(p *Pointer) {
	dispatch(i.handlers.pinchEnded, i.touchContext(EventPinchEnded, p))
}

// ClosestPointOnSurface returns the point on the node's shape surface
// nearest to point. Nodes without a shape report their origin. ok is false
// once the node is disposed.
func (i *Interactable) ClosestPointOnSurface(point mgl64.Vec3) (mgl64.Vec3, bool) {
	if i.node.disposed {
		return mgl64.Vec3{}, false
	}
	if i.node.Shape == nil {
		return i.node.WorldPosition(), true
	}
	local := i.node.WorldToLocal(point)
	return i.node.LocalToWorld(i.node.Shape.SurfacePoint(local)), true
}

func (i *Interactable) touchContext(ev EventType, p *Pointer) TouchContext {
	return TouchContext{
		Type:     ev,
		Pointer:  p,
		Node:     i.node,
		Target:   i.node.Target,
		EntityID: i.node.EntityID,
		Position: p.Position(),
	}
}

func (i *Interactable) indexOf(p *Pointer) int {
	for idx, q := range i.pointers {
		if q == p {
			return idx
		}
	}
	return -1
}
