package mrkit

// collectShapes walks the tree depth-first appending visible, collidable
// nodes that carry a Shape. Invisible subtrees are skipped.
func collectShapes(n *Node, buf []*Node) []*Node {
	if !n.Visible || n.disposed {
		return buf
	}
	if n.Collidable && n.Shape != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectShapes(child, buf)
	}
	return buf
}

// processOverlaps diffs each pointer's overlapping shapes against the last
// update. Ended overlaps stop touching first, then new overlaps start
// touching, both in tree order. A shape that was disposed or detached since
// the last update no longer overlaps, so the target it resolved to is
// released.
func (w *World) processOverlaps() {
	w.shapeBuf = collectShapes(w.root, w.shapeBuf[:0])
	for _, p := range w.registry.All() {
		if p.world != w {
			// removed by a callback earlier in this pass
			continue
		}
		p.pruneExpired()
		w.overlapBuf = w.pointerOverlaps(p, w.overlapBuf[:0])

		// Callbacks may clear the pointer's sets, so diff against a copy.
		w.prevOverlaps = append(w.prevOverlaps[:0], p.overlaps...)
		w.prevTargets = append(w.prevTargets[:0], p.overlapTargets...)
		for i, n := range w.prevOverlaps {
			if indexOfNode(w.overlapBuf, n) >= 0 {
				continue
			}
			p.endOverlap(n, w.prevTargets[i])
			if p.world != w {
				break
			}
		}
		if p.world != w {
			continue
		}

		p.overlaps = p.overlaps[:0]
		p.overlapTargets = p.overlapTargets[:0]
		for _, n := range w.overlapBuf {
			target := findTarget(n)
			if i := indexOfNode(w.prevOverlaps, n); i >= 0 {
				target = w.prevTargets[i]
			}
			p.overlaps = append(p.overlaps, n)
			p.overlapTargets = append(p.overlapTargets, target)
		}
		for _, n := range w.overlapBuf {
			if indexOfNode(w.prevOverlaps, n) >= 0 {
				continue
			}
			p.StartTouching(n)
			if p.world != w {
				break
			}
		}
	}
}

// pointerOverlaps appends the shapes within p's touch radius. Nodes in the
// pointer's own ancestry never count.
func (w *World) pointerOverlaps(p *Pointer, buf []*Node) []*Node {
	center := p.Position()
	for _, n := range w.shapeBuf {
		if isAncestor(n, p.node) {
			continue
		}
		if shapeDistance(n, center) <= p.radius {
			buf = append(buf, n)
		}
	}
	return buf
}
