package mrkit

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of viewer draw command.
type CommandType uint8

const (
	CommandSphere  CommandType = iota // circle outline of a sphere shape
	CommandBox                        // footprint of a box shape
	CommandPointer                    // filled detection sphere
	CommandCamera                     // camera position and facing
)

// RenderCommand is a single draw instruction emitted during tree traversal,
// already projected into screen space.
type RenderCommand struct {
	Type   CommandType
	Points [4][2]float32 // box corners, or the facing tip for cameras
	X, Y   float32
	Radius float32
	Color  color.Color
	Filled bool
}

// view maps world space onto the window as seen from above: +X to the
// right, +Y up the screen.
type view struct {
	center mgl64.Vec3
	ppu    float64
	width  int
	height int
}

func (v view) toScreen(p mgl64.Vec3) (float32, float32) {
	sx := float64(v.width)/2 + (p[0]-v.center[0])*v.ppu
	sy := float64(v.height)/2 - (p[1]-v.center[1])*v.ppu
	return float32(sx), float32(sy)
}

// toWorld inverts toScreen onto the horizontal plane at height z.
func (v view) toWorld(sx, sy, z float64) mgl64.Vec3 {
	if v.ppu == 0 {
		return mgl64.Vec3{v.center[0], v.center[1], z}
	}
	x := v.center[0] + (sx-float64(v.width)/2)/v.ppu
	y := v.center[1] - (sy-float64(v.height)/2)/v.ppu
	return mgl64.Vec3{x, y, z}
}

// Viewer palette.
var (
	colorHovered  = color.RGBA{R: 255, G: 210, B: 60, A: 255}
	colorPressed  = color.RGBA{R: 255, G: 120, B: 40, A: 255}
	colorPointer  = color.RGBA{R: 80, G: 220, B: 120, A: 200}
	colorPinched  = color.RGBA{R: 230, G: 70, B: 70, A: 220}
	colorCamera   = color.RGBA{R: 120, G: 170, B: 255, A: 255}
	colorInactive = color.RGBA{R: 120, G: 120, B: 120, A: 160}
)

// colorToRGBA converts a Color in [0, 1] to an 8-bit color.
func colorToRGBA(c Color) color.RGBA {
	clamp := func(f float64) uint8 {
		return uint8(mgl64.Clamp(f, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

type hoverer interface {
	IsHovered() bool
}

type presser interface {
	IsPressed() bool
}

// nodeColor picks the draw color of a shape node from its target state.
func nodeColor(n *Node) color.Color {
	if t := findTarget(n); t != nil {
		if p, ok := t.Target.(presser); ok && p.IsPressed() {
			return colorPressed
		}
		if h, ok := t.Target.(hoverer); ok && h.IsHovered() {
			return colorHovered
		}
	}
	return colorToRGBA(n.Color)
}

// traverse walks the node tree depth-first, emitting commands for visible
// nodes that carry a shape.
func (v view) traverse(n *Node, buf []RenderCommand) []RenderCommand {
	if !n.Visible || n.disposed {
		return buf
	}
	switch s := n.Shape.(type) {
	case ShapeSphere:
		m := n.WorldMatrix()
		x, y := v.toScreen(m.Mul4x1(s.Center.Vec4(1)).Vec3())
		scale := m.Col(0).Vec3().Len()
		buf = append(buf, RenderCommand{
			Type:   CommandSphere,
			X:      x,
			Y:      y,
			Radius: float32(s.Radius * scale * v.ppu),
			Color:  nodeColor(n),
		})
	case ShapeBox:
		cmd := RenderCommand{Type: CommandBox, Color: nodeColor(n)}
		corners := [4]mgl64.Vec3{
			{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
		}
		for i, c := range corners {
			local := s.Center.Add(mgl64.Vec3{c[0] * s.Extents[0], c[1] * s.Extents[1], 0})
			x, y := v.toScreen(n.LocalToWorld(local))
			cmd.Points[i] = [2]float32{x, y}
		}
		buf = append(buf, cmd)
	}
	for _, child := range n.children {
		buf = v.traverse(child, buf)
	}
	return buf
}

// commands builds the full draw list for a world: shapes in tree order, then
// pointers, then cameras.
func (v view) commands(w *World, buf []RenderCommand) []RenderCommand {
	buf = v.traverse(w.root, buf[:0])
	for _, p := range w.registry.All() {
		x, y := v.toScreen(p.Position())
		clr := color.Color(colorPointer)
		if p.Pinched() {
			clr = colorPinched
		}
		r := float32(p.radius * v.ppu)
		if r < 2 {
			r = 2
		}
		buf = append(buf, RenderCommand{Type: CommandPointer, X: x, Y: y, Radius: r, Color: clr, Filled: true})
	}
	for _, cam := range w.cameras {
		pose, ok := cam.CameraPose()
		clr := color.Color(colorCamera)
		if !ok {
			clr = colorInactive
			pose = Pose{Position: cam.Position, Rotation: cam.Rotation}
		}
		x, y := v.toScreen(pose.Position)
		tipX, tipY := v.toScreen(pose.Position.Add(pose.Forward().Mul(12 / math.Max(v.ppu, 1e-9))))
		cmd := RenderCommand{Type: CommandCamera, X: x, Y: y, Radius: 5, Color: clr}
		cmd.Points[0] = [2]float32{tipX, tipY}
		buf = append(buf, cmd)
	}
	return buf
}

// submit draws the command list onto dst.
func submit(dst *ebiten.Image, cmds []RenderCommand) {
	for i := range cmds {
		c := &cmds[i]
		switch c.Type {
		case CommandSphere:
			vector.StrokeCircle(dst, c.X, c.Y, c.Radius, 1.5, c.Color, true)
		case CommandBox:
			for j := 0; j < 4; j++ {
				a, b := c.Points[j], c.Points[(j+1)%4]
				vector.StrokeLine(dst, a[0], a[1], b[0], b[1], 1.5, c.Color, true)
			}
		case CommandPointer:
			vector.DrawFilledCircle(dst, c.X, c.Y, c.Radius, c.Color, true)
		case CommandCamera:
			vector.StrokeCircle(dst, c.X, c.Y, c.Radius, 1.5, c.Color, true)
			vector.StrokeLine(dst, c.X, c.Y, c.Points[0][0], c.Points[0][1], 1.5, c.Color, true)
		}
	}
}
