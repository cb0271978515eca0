package auxgeom

import "github.com/go-gl/mathgl/mgl32"

// Drawer is the immediate mode drawing API shared by all buffering variants.
type Drawer interface {
	SetRenderFlags(flags RenderFlags)
	RenderFlags() RenderFlags
	SetOrthoMode(enable bool, m mgl32.Mat4)

	DrawPoint(v mgl32.Vec3, col ColorB, size uint8)
	DrawPoints(v []mgl32.Vec3, col ColorB, size uint8)
	DrawPointsColored(v []mgl32.Vec3, cols []ColorB, size uint8)

	DrawLine(v0 mgl32.Vec3, c0 ColorB, v1 mgl32.Vec3, c1 ColorB, thickness float32)
	DrawLines(v []mgl32.Vec3, col ColorB, thickness float32)
	DrawLinesColored(v []mgl32.Vec3, cols []ColorB, thickness float32)
	DrawLinesIndexed(v []mgl32.Vec3, ind []Index, col ColorB, thickness float32)
	DrawLinesIndexedColored(v []mgl32.Vec3, cols []ColorB, ind []Index, thickness float32)
	DrawPolyline(v []mgl32.Vec3, closed bool, col ColorB, thickness float32)
	DrawPolylineColored(v []mgl32.Vec3, closed bool, cols []ColorB, thickness float32)

	DrawTriangle(v0 mgl32.Vec3, c0 ColorB, v1 mgl32.Vec3, c1 ColorB, v2 mgl32.Vec3, c2 ColorB)
	DrawTriangles(v []mgl32.Vec3, col ColorB)
	DrawTrianglesColored(v []mgl32.Vec3, cols []ColorB)
	DrawTrianglesIndexed(v []mgl32.Vec3, ind []Index, col ColorB)
	DrawTrianglesIndexedColored(v []mgl32.Vec3, cols []ColorB, ind []Index)

	DrawAABB(box AABB, solid bool, col ColorB, style BoxStyle)
	DrawAABBs(boxes []AABB, solid bool, col ColorB, style BoxStyle)
	DrawAABBTransformed(box AABB, matWorld mgl32.Mat4, solid bool, col ColorB, style BoxStyle)
	DrawOBB(obb OBB, pos mgl32.Vec3, solid bool, col ColorB, style BoxStyle)
	DrawOBBTransformed(obb OBB, matWorld mgl32.Mat4, solid bool, col ColorB, style BoxStyle)

	DrawQuad(width, height float32, matWorld mgl32.Mat4, col ColorB, shaded bool)
	DrawSphere(pos mgl32.Vec3, radius float32, col ColorB, shaded bool)
	DrawDisk(pos, dir mgl32.Vec3, radius float32, col ColorB, shaded bool)
	DrawCone(pos, dir mgl32.Vec3, radius, height float32, col ColorB, shaded bool)
	DrawCylinder(pos, dir mgl32.Vec3, radius, height float32, col ColorB, shaded bool)
	DrawBone(parent, child mgl32.Vec3, col ColorB)

	DrawText(pos mgl32.Vec3, opts TextOptions, format string, args ...any) bool
	Draw2DLabel(x, y, scale float32, col ColorB, center bool, format string, args ...any) bool
}

var (
	_ AuxGeom = (*CommandBuffer)(nil)
	_ AuxGeom = (*MainThreadBuffer)(nil)
	_ AuxGeom = (*WorkerThreadBuffer)(nil)
)
