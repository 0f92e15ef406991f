package mrkit

// PointerRegistry tracks the live pointers of a World. It is mutated only
// when pointers are added or removed; readers get a copy.
type PointerRegistry struct {
	pointers []*Pointer
}

// Len returns the number of registered pointers.
func (r *PointerRegistry) Len() int {
	return len(r.pointers)
}

// All returns a snapshot of the registered pointers in registration order.
func (r *PointerRegistry) All() []*Pointer {
	out := make([]*Pointer, len(r.pointers))
	copy(out, r.pointers)
	return out
}

// Contains reports whether p is registered.
func (r *PointerRegistry) Contains(p *Pointer) bool {
	for _, q := range r.pointers {
		if q == p {
			return true
		}
	}
	return false
}

func (r *PointerRegistry) add(p *Pointer) bool {
	if r.Contains(p) {
		return false
	}
	r.pointers = append(r.pointers, p)
	return true
}

func (r *PointerRegistry) remove(p *Pointer) bool {
	for i, q := range r.pointers {
		if q == p {
			copy(r.pointers[i:], r.pointers[i+1:])
			r.pointers[len(r.pointers)-1] = nil
			r.pointers = r.pointers[:len(r.pointers)-1]
			return true
		}
	}
	return false
}
