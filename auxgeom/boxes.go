package auxgeom

import "github.com/go-gl/mathgl/mgl32"

// Box corners are laid out as
//
//	0 (x y z)  1 (x Y z)  2 (X Y z)  3 (X y z)
//	4 (x y Z)  5 (x Y Z)  6 (X Y Z)  7 (X y Z)
//
// with lower case the min and upper case the max coordinate.
type boxCorners [8]mgl32.Vec3

var boxWireIndices = [24]Index{
	0, 1, 1, 2, 2, 3, 3, 0,
	4, 5, 5, 6, 6, 7, 7, 4,
	0, 4, 1, 5, 2, 6, 3, 7,
}

var boxSolidIndices = [36]Index{
	0, 1, 2, 0, 2, 3,
	7, 6, 5, 7, 5, 4,
	3, 2, 6, 3, 6, 7,
	4, 5, 1, 4, 1, 0,
	1, 5, 6, 1, 6, 2,
	4, 0, 3, 4, 3, 7,
}

// Shaded faces: four corners each and a brightness scale.
var boxShadedFaces = [6]struct {
	corners [4]int
	scale   float32
}{
	{[4]int{0, 1, 2, 3}, 0.5}, // down
	{[4]int{4, 7, 6, 5}, 1.0}, // top
	{[4]int{0, 3, 7, 4}, 0.6}, // back
	{[4]int{1, 5, 6, 2}, 0.9}, // front
	{[4]int{0, 4, 5, 1}, 0.7}, // left
	{[4]int{3, 2, 6, 7}, 0.8}, // right
}

var quadIndices = [6]Index{0, 1, 2, 0, 2, 3}

func aabbCorners(box AABB) boxCorners {
	lo, hi := box.Min, box.Max
	return boxCorners{
		{lo.X(), lo.Y(), lo.Z()},
		{lo.X(), hi.Y(), lo.Z()},
		{hi.X(), hi.Y(), lo.Z()},
		{hi.X(), lo.Y(), lo.Z()},
		{lo.X(), lo.Y(), hi.Z()},
		{lo.X(), hi.Y(), hi.Z()},
		{hi.X(), hi.Y(), hi.Z()},
		{hi.X(), lo.Y(), hi.Z()},
	}
}

// obbCorners returns M33 * (C +- H) in box corner order.
func obbCorners(obb OBB) boxCorners {
	lo := obb.C.Sub(obb.H)
	hi := obb.C.Add(obb.H)
	c := aabbCorners(AABB{Min: lo, Max: hi})
	for i := range c {
		c[i] = obb.M33.Mul3x1(c[i])
	}
	return c
}

func (c *boxCorners) translate(pos mgl32.Vec3) {
	for i := range c {
		c[i] = c[i].Add(pos)
	}
}

func (c *boxCorners) transform(m mgl32.Mat4) {
	for i := range c {
		c[i] = mgl32.TransformCoordinate(c[i], m)
	}
}

func boxVertexCount(solid bool, style BoxStyle) int {
	if solid && style == BoxShaded {
		return 24
	}
	return 8
}

func boxIndexCount(solid bool) int {
	if solid {
		return 36
	}
	return 24
}

func (cb *CommandBuffer) boxFlags(solid bool, col ColorB) RenderFlags {
	if solid {
		return triangleRenderFlags(cb.cur.CurRenderFlags, true) | alphaFlags(col)
	}
	return lineRenderFlags(cb.cur.CurRenderFlags, true) | alphaFlags(col)
}

// writeBox fills one box into verts and idx. Indices are rebased by base,
// the position of the box's first vertex within the entry.
func writeBox(verts []Vertex, idx []Index, base Index, c *boxCorners, solid bool, col ColorB, style BoxStyle) {
	if solid && style == BoxShaded {
		for f, face := range boxShadedFaces {
			color := PackColor(ScaleColor(col, face.scale))
			for k, ci := range face.corners {
				verts[4*f+k] = Vertex{Pos: c[ci], Color: color}
			}
			for k, q := range quadIndices {
				idx[6*f+k] = base + Index(4*f) + q
			}
		}
		return
	}

	color := PackColor(col)
	for i := range c {
		verts[i] = Vertex{Pos: c[i], Color: color}
	}
	if style == BoxColorEncoded {
		verts[0].Color = PackColor(ColorB{15, 15, 15, col.A})
		verts[6].Color = PackColor(ColorB{255, 255, 255, col.A})
	}

	src := boxWireIndices[:]
	if solid {
		src = boxSolidIndices[:]
	}
	for k, v := range src {
		idx[k] = base + v
	}
}

func (cb *CommandBuffer) drawBox(c *boxCorners, solid bool, col ColorB, style BoxStyle) {
	verts, idx, ok := cb.addIndexedPrimitive(boxVertexCount(solid, style), boxIndexCount(solid), cb.boxFlags(solid, col))
	if !ok {
		return
	}
	writeBox(verts, idx, 0, c, solid, col, style)
}

func (cb *CommandBuffer) DrawAABB(box AABB, solid bool, col ColorB, style BoxStyle) {
	c := aabbCorners(box)
	cb.drawBox(&c, solid, col, style)
}

// DrawAABBs packs all boxes into a single indexed entry.
func (cb *CommandBuffer) DrawAABBs(boxes []AABB, solid bool, col ColorB, style BoxStyle) {
	if len(boxes) == 0 {
		return
	}
	nv, ni := boxVertexCount(solid, style), boxIndexCount(solid)
	verts, idx, ok := cb.addIndexedPrimitive(nv*len(boxes), ni*len(boxes), cb.boxFlags(solid, col))
	if !ok {
		return
	}
	for i, box := range boxes {
		c := aabbCorners(box)
		writeBox(verts[nv*i:nv*(i+1)], idx[ni*i:ni*(i+1)], Index(nv*i), &c, solid, col, style)
	}
}

func (cb *CommandBuffer) DrawAABBTransformed(box AABB, matWorld mgl32.Mat4, solid bool, col ColorB, style BoxStyle) {
	c := aabbCorners(box)
	c.transform(matWorld)
	cb.drawBox(&c, solid, col, style)
}

func (cb *CommandBuffer) DrawOBB(obb OBB, pos mgl32.Vec3, solid bool, col ColorB, style BoxStyle) {
	c := obbCorners(obb)
	c.translate(pos)
	cb.drawBox(&c, solid, col, style)
}

func (cb *CommandBuffer) DrawOBBTransformed(obb OBB, matWorld mgl32.Mat4, solid bool, col ColorB, style BoxStyle) {
	c := obbCorners(obb)
	c.transform(matWorld)
	cb.drawBox(&c, solid, col, style)
}
