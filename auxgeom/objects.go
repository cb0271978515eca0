package auxgeom

import (
	"github.com/go-gl/mathgl/mgl32"
)

// orthogonal returns a vector perpendicular to v.
func orthogonal(v mgl32.Vec3) mgl32.Vec3 {
	if v.X()*v.X() <= 0.81*v.LenSqr() {
		return mgl32.Vec3{0, v.Z(), -v.Y()}
	}
	return mgl32.Vec3{-v.Z(), 0, v.X()}
}

// axisRotation builds a rotation whose Y axis points along dir.
func axisRotation(dir mgl32.Vec3) mgl32.Mat3 {
	y := dir.Normalize()
	x := orthogonal(dir).Normalize()
	z := x.Cross(y)
	return mgl32.Mat3FromCols(x, y, z)
}

func (cb *CommandBuffer) DrawQuad(width, height float32, matWorld mgl32.Mat4, col ColorB, shaded bool) {
	if width <= 0 && height <= 0 {
		return
	}
	p := cb.addObject(objectRenderFlags(cb.cur.CurRenderFlags, ObjQuad) | alphaFlags(col))
	p.World = matWorld.Mul4(mgl32.Scale3D(width, 1, height))
	p.WorldRotation = matWorld.Mat3()
	p.Color = PackColor(col)
	p.Size = max(width, height) * 0.5
	p.Shaded = shaded
}

func (cb *CommandBuffer) DrawSphere(pos mgl32.Vec3, radius float32, col ColorB, shaded bool) {
	if radius <= 0 {
		return
	}
	p := cb.addObject(objectRenderFlags(cb.cur.CurRenderFlags, ObjSphere) | alphaFlags(col))
	p.World = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.Scale3D(radius, radius, radius))
	p.WorldRotation = mgl32.Ident3()
	p.Color = PackColor(col)
	p.Size = radius
	p.Shaded = shaded
}

func (cb *CommandBuffer) DrawDisk(pos, dir mgl32.Vec3, radius float32, col ColorB, shaded bool) {
	if radius <= 0 || dir.LenSqr() <= 0 {
		return
	}
	rot := axisRotation(dir)
	p := cb.addObject(objectRenderFlags(cb.cur.CurRenderFlags, ObjDisk) | alphaFlags(col))
	p.World = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot.Mat4()).Mul4(mgl32.Scale3D(radius, 1, radius))
	p.WorldRotation = rot
	p.Color = PackColor(col)
	p.Size = radius
	p.Shaded = shaded
}

func (cb *CommandBuffer) DrawCone(pos, dir mgl32.Vec3, radius, height float32, col ColorB, shaded bool) {
	cb.drawAxial(ObjCone, pos, dir, radius, height, col, shaded)
}

func (cb *CommandBuffer) DrawCylinder(pos, dir mgl32.Vec3, radius, height float32, col ColorB, shaded bool) {
	cb.drawAxial(ObjCylinder, pos, dir, radius, height, col, shaded)
}

func (cb *CommandBuffer) drawAxial(t ObjectType, pos, dir mgl32.Vec3, radius, height float32, col ColorB, shaded bool) {
	if radius <= 0 || height <= 0 || dir.LenSqr() <= 0 {
		return
	}
	rot := axisRotation(dir)
	p := cb.addObject(objectRenderFlags(cb.cur.CurRenderFlags, t) | alphaFlags(col))
	p.World = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot.Mat4()).Mul4(mgl32.Scale3D(radius, height, radius))
	p.WorldRotation = rot
	p.Color = PackColor(col)
	p.Size = max(radius, height*0.5)
	p.Shaded = shaded
}

var (
	boneJointColor = ColorB{0xff, 0x1f, 0x1f, 0x00}
	boneEndColor   = ColorB{0x07, 0x0f, 0x1f, 0x00}
)

// DrawBone draws a thin pyramid from the parent joint to the child joint.
func (cb *CommandBuffer) DrawBone(parent, child mgl32.Vec3, col ColorB) {
	bone := child.Sub(parent)
	length := bone.Len()
	if length < 1e-4 {
		return
	}
	m := mgl32.Translate3D(parent.X(), parent.Y(), parent.Z()).
		Mul4(mgl32.QuatBetweenVectors(mgl32.Vec3{1, 0, 0}, bone.Mul(1/length)).Mat4())

	t := min(0.01, length*0.05)
	xf := func(v mgl32.Vec3) mgl32.Vec3 { return mgl32.TransformCoordinate(v, m) }
	s := xf(mgl32.Vec3{})
	mid := [4]mgl32.Vec3{
		xf(mgl32.Vec3{t, t, t}),
		xf(mgl32.Vec3{t, -t, t}),
		xf(mgl32.Vec3{t, -t, -t}),
		xf(mgl32.Vec3{t, t, -t}),
	}
	e := xf(mgl32.Vec3{length, 0, 0})

	for _, p := range mid {
		cb.DrawLine(s, boneJointColor, p, col, 1)
	}
	for i := range mid {
		cb.DrawLine(mid[i], col, mid[(i+1)%4], col, 1)
	}
	for _, p := range mid {
		cb.DrawLine(e, boneEndColor, p, col, 1)
	}
}
