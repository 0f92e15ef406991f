package mrkit

import "github.com/go-gl/mathgl/mgl64"

// --- Callback contexts ---

// TouchContext carries touch and pinch event data.
type TouchContext struct {
	Type     EventType
	Pointer  *Pointer
	Node     *Node // the target node
	Target   Target
	EntityID uint32
	Position mgl64.Vec3 // pointer position in world space
}

// HoverContext carries hover event data. WasHovered is set on hover start
// when another pointer already hovered the interactable; IsHovered is set on
// hover end when another pointer still hovers it.
type HoverContext struct {
	Type         EventType
	Interactable *Interactable
	Pointer      *Pointer
	WasHovered   bool
	IsHovered    bool
}

// ButtonContext carries press/release data for a PressableButton.
type ButtonContext struct {
	Type    EventType
	Button  *PressableButton
	Pointer *Pointer // deepest pointer at the time of the event; nil on release by recovery
	Depth   float64
}

// --- Handler registry ---

type handler[C any] struct {
	id uint32
	fn func(C)
}

func removeHandler[C any](s []handler[C], id uint32) []handler[C] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[C]{}
			return s[:len(s)-1]
		}
	}
	return s
}

type handlerRegistry struct {
	touchStarted   []handler[TouchContext]
	touchEnded     []handler[TouchContext]
	pinchStarted   []handler[TouchContext]
	pinchEnded     []handler[TouchContext]
	hoverStarted   []handler[HoverContext]
	hoverEnded     []handler[HoverContext]
	buttonPressed  []handler[ButtonContext]
	buttonReleased []handler[ButtonContext]
	nextID         uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventTouchStarted:
		h.reg.touchStarted = removeHandler(h.reg.touchStarted, h.id)
	case EventTouchEnded:
		h.reg.touchEnded = removeHandler(h.reg.touchEnded, h.id)
	case EventPinchStarted:
		h.reg.pinchStarted = removeHandler(h.reg.pinchStarted, h.id)
	case EventPinchEnded:
		h.reg.pinchEnded = removeHandler(h.reg.pinchEnded, h.id)
	case EventHoverStarted:
		h.reg.hoverStarted = removeHandler(h.reg.hoverStarted, h.id)
	case EventHoverEnded:
		h.reg.hoverEnded = removeHandler(h.reg.hoverEnded, h.id)
	case EventButtonPressed:
		h.reg.buttonPressed = removeHandler(h.reg.buttonPressed, h.id)
	case EventButtonReleased:
		h.reg.buttonReleased = removeHandler(h.reg.buttonReleased, h.id)
	}
}

func (r *handlerRegistry) addTouch(ev EventType, fn func(TouchContext)) CallbackHandle {
	r.nextID++
	h := handler[TouchContext]{id: r.nextID, fn: fn}
	switch ev {
	case EventTouchStarted:
		r.touchStarted = append(r.touchStarted, h)
	case EventTouchEnded:
		r.touchEnded = append(r.touchEnded, h)
	case EventPinchStarted:
		r.pinchStarted = append(r.pinchStarted, h)
	case EventPinchEnded:
		r.pinchEnded = append(r.pinchEnded, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: ev}
}

func (r *handlerRegistry) addHover(ev EventType, fn func(HoverContext)) CallbackHandle {
	r.nextID++
	h := handler[HoverContext]{id: r.nextID, fn: fn}
	if ev == EventHoverStarted {
		r.hoverStarted = append(r.hoverStarted, h)
	} else {
		r.hoverEnded = append(r.hoverEnded, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: ev}
}

func (r *handlerRegistry) addButton(ev EventType, fn func(ButtonContext)) CallbackHandle {
	r.nextID++
	h := handler[ButtonContext]{id: r.nextID, fn: fn}
	if ev == EventButtonPressed {
		r.buttonPressed = append(r.buttonPressed, h)
	} else {
		r.buttonReleased = append(r.buttonReleased, h)
	}
	return CallbackHandle{id: h.id, reg: r, event: ev}
}

func (r *handlerRegistry) touchHandlers(ev EventType) []handler[TouchContext] {
	switch ev {
	case EventTouchStarted:
		return r.touchStarted
	case EventTouchEnded:
		return r.touchEnded
	case EventPinchStarted:
		return r.pinchStarted
	case EventPinchEnded:
		return r.pinchEnded
	}
	return nil
}

// dispatch calls every handler in s. Handlers may remove themselves, so
// the slice is walked from a copy.
func dispatch[C any](s []handler[C], ctx C) {
	if len(s) == 0 {
		return
	}
	if len(s) == 1 {
		s[0].fn(ctx)
		return
	}
	hs := make([]handler[C], len(s))
	copy(hs, s)
	for _, h := range hs {
		h.fn(ctx)
	}
}

// --- ECS bridge ---

// EntityStore is the interface for optional ECS integration.
// When set on a World, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32 // EntityID of the target node
	PointerID uint32
	Position  mgl64.Vec3 // pointer position in world space
	// Others is WasHovered for hover start and IsHovered for hover end.
	Others bool
	// Depth is the push depth for button events.
	Depth float64
}
