package debugdraw

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/debugdraw/auxgeom"
)

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoCube
	GizmoSphere
	GizmoRect   // Wireframe rectangle in the local XY plane
	GizmoCircle // Wireframe circle in the local XY plane
	GizmoAxes
	GizmoBone
)

const gizmoCircleSegments = 32

// Gizmo is one debug shape. Gizmos are drawn as wireframes unless Solid is set.
type Gizmo struct {
	Type  GizmoType
	Color [4]float32

	// For Cube, Sphere, Rect, Circle and Axes: Position is the center and Scale
	// the dimensions. For Line and Bone: Position is the start.
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	LineEnd   mgl32.Vec3
	Radius    float32
	Thickness float32
	Solid     bool
}

func NewGizmoLine(start, end mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoLine,
		Position: start,
		LineEnd:  end,
		Color:    color,
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
}

func NewGizmoCube(center mgl32.Vec3, size mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoCube,
		Position: center,
		Scale:    size,
		Color:    color,
		Rotation: mgl32.QuatIdent(),
	}
}

func NewGizmoSphere(center mgl32.Vec3, radius float32, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoSphere,
		Position: center,
		Radius:   radius,
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    color,
		Rotation: mgl32.QuatIdent(),
	}
}

func NewGizmoCircle(center mgl32.Vec3, rotation mgl32.Quat, radius float32, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoCircle,
		Position: center,
		Rotation: rotation,
		Radius:   radius,
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    color,
	}
}

func NewGizmoAxes(origin mgl32.Vec3, rotation mgl32.Quat, length float32) Gizmo {
	return Gizmo{
		Type:     GizmoAxes,
		Position: origin,
		Rotation: rotation,
		Scale:    mgl32.Vec3{length, length, length},
		Color:    [4]float32{1, 1, 1, 1},
	}
}

func (g *Gizmo) rotation() mgl32.Quat {
	if g.Rotation == (mgl32.Quat{}) {
		return mgl32.QuatIdent()
	}
	return g.Rotation.Normalize()
}

func (g *Gizmo) scale() mgl32.Vec3 {
	if g.Scale == (mgl32.Vec3{}) {
		return mgl32.Vec3{1, 1, 1}
	}
	return g.Scale
}

// local maps a point of the gizmo's local frame to world space.
func (g *Gizmo) local(p mgl32.Vec3) mgl32.Vec3 {
	s := g.scale()
	return g.Position.Add(g.rotation().Rotate(mgl32.Vec3{p.X() * s.X(), p.Y() * s.Y(), p.Z() * s.Z()}))
}

func (g *Gizmo) Draw(d auxgeom.Drawer) {
	col := auxgeom.ColorF(g.Color)
	thickness := max(g.Thickness, 1)

	switch g.Type {
	case GizmoLine:
		d.DrawLine(g.Position, col, g.LineEnd, col, thickness)
	case GizmoCube:
		obb := auxgeom.OBB{
			M33: g.rotation().Mat4().Mat3(),
			H:   g.scale().Mul(0.5),
		}
		d.DrawOBB(obb, g.Position, g.Solid, col, auxgeom.BoxShaded)
	case GizmoSphere:
		d.DrawSphere(g.Position, g.Radius*g.scale().X(), col, g.Solid)
	case GizmoRect:
		d.DrawPolyline([]mgl32.Vec3{
			g.local(mgl32.Vec3{-0.5, -0.5, 0}),
			g.local(mgl32.Vec3{0.5, -0.5, 0}),
			g.local(mgl32.Vec3{0.5, 0.5, 0}),
			g.local(mgl32.Vec3{-0.5, 0.5, 0}),
		}, true, col, thickness)
	case GizmoCircle:
		pts := make([]mgl32.Vec3, gizmoCircleSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / gizmoCircleSegments
			pts[i] = g.local(mgl32.Vec3{g.Radius * float32(math.Cos(a)), g.Radius * float32(math.Sin(a)), 0})
		}
		d.DrawPolyline(pts, true, col, thickness)
	case GizmoAxes:
		d.DrawLine(g.Position, auxgeom.Red, g.local(mgl32.Vec3{1, 0, 0}), auxgeom.Red, thickness)
		d.DrawLine(g.Position, auxgeom.Green, g.local(mgl32.Vec3{0, 1, 0}), auxgeom.Green, thickness)
		d.DrawLine(g.Position, auxgeom.Blue, g.local(mgl32.Vec3{0, 0, 1}), auxgeom.Blue, thickness)
	case GizmoBone:
		d.DrawBone(g.Position, g.LineEnd, col)
	}
}

// Gizmos is the resource systems add debug shapes to. Shapes added with Add
// are drawn once; Keep adds a shape drawn every frame until Remove.
type Gizmos struct {
	Disabled bool

	frame  []Gizmo
	kept   map[int]Gizmo
	nextID int
	labels []ScreenLabel
}

func (g *Gizmos) Add(gizmos ...Gizmo) {
	g.frame = append(g.frame, gizmos...)
}

func (g *Gizmos) Keep(gizmo Gizmo) int {
	if g.kept == nil {
		g.kept = make(map[int]Gizmo)
	}
	g.nextID++
	g.kept[g.nextID] = gizmo
	return g.nextID
}

func (g *Gizmos) Remove(id int) {
	delete(g.kept, id)
}

// Label adds a screen space label for one frame.
func (g *Gizmos) Label(l ScreenLabel) {
	g.labels = append(g.labels, l)
}

func (g *Gizmos) Len() int {
	return len(g.frame) + len(g.kept) + len(g.labels)
}

// Draw records every gizmo and label into d and drops the one frame ones.
func (g *Gizmos) Draw(d auxgeom.Drawer) {
	if !g.Disabled {
		for _, gz := range g.kept {
			gz.Draw(d)
		}
		for i := range g.frame {
			g.frame[i].Draw(d)
		}
		for i := range g.labels {
			g.labels[i].Draw(d)
		}
	}
	g.frame = g.frame[:0]
	g.labels = g.labels[:0]
}

type GizmoModule struct{}

func (GizmoModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Gizmos{})
	cmd.UseSystem(System(gizmoSystem).InStage(Render).RunAlways())
}

func gizmoSystem(gizmos *Gizmos, ag *AuxGeom) {
	gizmos.Draw(ag.Drawer())
}
