package mrkit

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxTouchPointers bounds the number of simultaneous touch pointers the
// viewer drives.
const maxTouchPointers = 10

// inputDriver moves pointers from ebiten input inside the viewer. The mouse
// drives one pointer on a horizontal plane with the left button as pinch.
// Each screen touch drives one pointer from a pool; a pointer is active only
// while its touch is held.
type inputDriver struct {
	mouse       *Pointer
	mouseHeight float64

	touches      []*Pointer
	touchMap     [maxTouchPointers]ebiten.TouchID
	touchUsed    [maxTouchPointers]bool
	prevTouchIDs []ebiten.TouchID
}

// processInput is called from the viewer's Update before the world steps.
func (d *inputDriver) processInput(w *World, v view) {
	d.processMousePointer(w, v)
	d.processTouchPointers(w, v)
}

// processMousePointer places the mouse pointer under the cursor.
func (d *inputDriver) processMousePointer(w *World, v view) {
	if d.mouse == nil {
		return
	}
	mx, my := ebiten.CursorPosition()
	movePointer(d.mouse, v.toWorld(float64(mx), float64(my), d.mouseHeight))
	if !d.mouse.Active() {
		w.AddPointer(d.mouse)
	}
	d.mouse.SetPinched(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processTouchPointers activates one pool pointer per held touch and
// deactivates pointers whose touch was lifted.
func (d *inputDriver) processTouchPointers(w *World, v view) {
	touchIDs := ebiten.AppendTouchIDs(d.prevTouchIDs[:0])
	d.prevTouchIDs = touchIDs

	var activeSlots [maxTouchPointers]bool
	for _, tid := range touchIDs {
		slot := d.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		p := d.touches[slot]
		movePointer(p, v.toWorld(float64(tx), float64(ty), d.mouseHeight))
		w.AddPointer(p)
	}

	// Release any touch slots that are no longer active.
	for i := range d.touches {
		if d.touchUsed[i] && !activeSlots[i] {
			w.RemovePointer(d.touches[i])
			d.touchUsed[i] = false
			d.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pool index.
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (d *inputDriver) touchSlot(tid ebiten.TouchID) int {
	for i := range d.touches {
		if d.touchUsed[i] && d.touchMap[i] == tid {
			return i
		}
	}
	for i := range d.touches {
		if !d.touchUsed[i] {
			d.touchUsed[i] = true
			d.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// movePointer sets the world position of p's node, keeping its rotation.
func movePointer(p *Pointer, pos mgl64.Vec3) {
	pose := p.node.WorldPose()
	pose.Position = pos
	p.node.SetWorldPose(pose)
}
