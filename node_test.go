package mrkit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != "test" {
		t.Errorf("Name = %q, want %q", n.Name, "test")
	}
	if n.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale)
	}
	if n.Rotation != mgl64.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", n.Rotation)
	}
	if !n.Visible || !n.Collidable {
		t.Error("Visible and Collidable should default to true")
	}
	if n.Target != nil || n.Shape != nil {
		t.Error("Target and Shape should default to nil")
	}
}

func TestNewNodeUniqueIDs(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ, both %d", a.ID)
	}
}

func TestNewShapeNode(t *testing.T) {
	s := ShapeSphere{Radius: 2}
	n := NewShapeNode("s", s)
	if n.Shape != s {
		t.Errorf("Shape = %v, want %v", n.Shape, s)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should contain child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	child := NewNode("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent has %d children, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewNode("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b.AddChild(a)
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewNode("a")
	other := NewNode("other")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.RemoveChild(other)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	child.RemoveFromParent()

	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	// No-op without parent.
	child.RemoveFromParent()
}

func TestRemoveChildPreservesOrder(t *testing.T) {
	parent := NewNode("parent")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)
	parent.RemoveChild(b)

	if parent.ChildAt(0) != a || parent.ChildAt(1) != c {
		t.Errorf("children = %v, %v; want a, c", parent.ChildAt(0).Name, parent.ChildAt(1).Name)
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	root := NewNode("root")
	parent := NewNode("parent")
	child := NewNode("child")
	root.AddChild(parent)
	parent.AddChild(child)
	parent.Target = &TargetFuncs{}
	parent.Shape = ShapeSphere{Radius: 1}

	parent.Dispose()

	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("parent and child should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("parent should be removed from root")
	}
	if parent.Target != nil || parent.Shape != nil {
		t.Error("Target and Shape should be cleared")
	}
	// Second dispose is a no-op.
	parent.Dispose()
}

func TestIsAncestor(t *testing.T) {
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	a.AddChild(b)
	b.AddChild(c)

	if !isAncestor(a, c) || !isAncestor(c, c) {
		t.Error("a and c should be ancestors of c")
	}
	if isAncestor(c, a) {
		t.Error("c is not an ancestor of a")
	}
}
