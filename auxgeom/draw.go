package auxgeom

import "github.com/go-gl/mathgl/mgl32"

func (cb *CommandBuffer) DrawPoint(v mgl32.Vec3, col ColorB, size uint8) {
	debugAssert(size > 0, "point size must be positive")
	verts, _ := cb.addPrimitive(1, pointRenderFlags(cb.cur.CurRenderFlags, size)|alphaFlags(col))
	verts[0] = Vertex{Pos: v, Color: PackColor(col)}
}

func (cb *CommandBuffer) DrawPoints(v []mgl32.Vec3, col ColorB, size uint8) {
	debugAssert(size > 0, "point size must be positive")
	if len(v) == 0 {
		return
	}
	verts, _ := cb.addPrimitive(len(v), pointRenderFlags(cb.cur.CurRenderFlags, size)|alphaFlags(col))
	color := PackColor(col)
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: color}
	}
}

func (cb *CommandBuffer) DrawPointsColored(v []mgl32.Vec3, cols []ColorB, size uint8) {
	debugAssert(size > 0, "point size must be positive")
	debugAssert(len(cols) >= len(v), "%d colours for %d points", len(cols), len(v))
	if len(v) == 0 || len(cols) < len(v) {
		return
	}
	verts, _ := cb.addPrimitive(len(v), pointRenderFlags(cb.cur.CurRenderFlags, size)|alphaFlagsOf(cols[:len(v)]))
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: PackColor(cols[i])}
	}
}

// DrawLine draws a thin line, or a thick line when thickness exceeds 1.
func (cb *CommandBuffer) DrawLine(v0 mgl32.Vec3, c0 ColorB, v1 mgl32.Vec3, c1 ColorB, thickness float32) {
	if thickness > 1 {
		cb.drawThickLine(v0, c0, v1, c1, thickness)
		return
	}
	verts, _ := cb.addPrimitive(2, lineRenderFlags(cb.cur.CurRenderFlags, false)|alphaFlags(c0)|alphaFlags(c1))
	verts[0] = Vertex{Pos: v0, Color: PackColor(c0)}
	verts[1] = Vertex{Pos: v1, Color: PackColor(c1)}
}

func validLineList(n int) bool {
	debugAssert(n >= 2 && n%2 == 0, "line list needs an even count of at least 2, got %d", n)
	return n >= 2 && n%2 == 0
}

func (cb *CommandBuffer) DrawLines(v []mgl32.Vec3, col ColorB, thickness float32) {
	if !validLineList(len(v)) {
		return
	}
	if thickness > 1 {
		for i := 0; i < len(v); i += 2 {
			cb.drawThickLine(v[i], col, v[i+1], col, thickness)
		}
		return
	}
	verts, _ := cb.addPrimitive(len(v), lineRenderFlags(cb.cur.CurRenderFlags, false)|alphaFlags(col))
	color := PackColor(col)
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: color}
	}
}

func (cb *CommandBuffer) DrawLinesColored(v []mgl32.Vec3, cols []ColorB, thickness float32) {
	if !validLineList(len(v)) || len(cols) < len(v) {
		return
	}
	if thickness > 1 {
		for i := 0; i < len(v); i += 2 {
			cb.drawThickLine(v[i], cols[i], v[i+1], cols[i+1], thickness)
		}
		return
	}
	verts, _ := cb.addPrimitive(len(v), lineRenderFlags(cb.cur.CurRenderFlags, false)|alphaFlagsOf(cols[:len(v)]))
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: PackColor(cols[i])}
	}
}

func (cb *CommandBuffer) DrawLinesIndexed(v []mgl32.Vec3, ind []Index, col ColorB, thickness float32) {
	debugAssert(len(v) >= 2, "indexed lines need at least 2 vertices")
	if len(v) < 2 || !validLineList(len(ind)) {
		return
	}
	if thickness > 1 {
		for i := 0; i < len(ind); i += 2 {
			cb.drawThickLine(v[ind[i]], col, v[ind[i+1]], col, thickness)
		}
		return
	}
	verts, idx, ok := cb.addIndexedPrimitive(len(v), len(ind), lineRenderFlags(cb.cur.CurRenderFlags, true)|alphaFlags(col))
	if !ok {
		return
	}
	color := PackColor(col)
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: color}
	}
	copy(idx, ind)
}

func (cb *CommandBuffer) DrawLinesIndexedColored(v []mgl32.Vec3, cols []ColorB, ind []Index, thickness float32) {
	debugAssert(len(v) >= 2, "indexed lines need at least 2 vertices")
	if len(v) < 2 || len(cols) < len(v) || !validLineList(len(ind)) {
		return
	}
	if thickness > 1 {
		for i := 0; i < len(ind); i += 2 {
			a, b := ind[i], ind[i+1]
			cb.drawThickLine(v[a], cols[a], v[b], cols[b], thickness)
		}
		return
	}
	verts, idx, ok := cb.addIndexedPrimitive(len(v), len(ind), lineRenderFlags(cb.cur.CurRenderFlags, true)|alphaFlagsOf(cols[:len(v)]))
	if !ok {
		return
	}
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: PackColor(cols[i])}
	}
	copy(idx, ind)
}

func validPolyline(n int, closed bool) bool {
	debugAssert(n >= 2, "polyline needs at least 2 points, got %d", n)
	debugAssert(!closed || n >= 3, "closed polyline needs at least 3 points, got %d", n)
	return n >= 2 && (!closed || n >= 3)
}

// polylineIndices fills segment pairs (i, i+1) and the closing (n-1, 0).
func polylineIndices(idx []Index, n int, closed bool) {
	for i := 0; i < n-1; i++ {
		idx[2*i] = Index(i)
		idx[2*i+1] = Index(i + 1)
	}
	if closed {
		idx[2*(n-1)] = Index(n - 1)
		idx[2*(n-1)+1] = 0
	}
}

func polylineIndexCount(n int, closed bool) int {
	if closed {
		return 2 * n
	}
	return 2 * (n - 1)
}

func (cb *CommandBuffer) DrawPolyline(v []mgl32.Vec3, closed bool, col ColorB, thickness float32) {
	n := len(v)
	if !validPolyline(n, closed) {
		return
	}
	if thickness > 1 {
		for i := 0; i < n-1; i++ {
			cb.drawThickLine(v[i], col, v[i+1], col, thickness)
		}
		if closed {
			cb.drawThickLine(v[n-1], col, v[0], col, thickness)
		}
		return
	}
	verts, idx, ok := cb.addIndexedPrimitive(n, polylineIndexCount(n, closed), lineRenderFlags(cb.cur.CurRenderFlags, true)|alphaFlags(col))
	if !ok {
		return
	}
	color := PackColor(col)
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: color}
	}
	polylineIndices(idx, n, closed)
}

func (cb *CommandBuffer) DrawPolylineColored(v []mgl32.Vec3, closed bool, cols []ColorB, thickness float32) {
	n := len(v)
	if !validPolyline(n, closed) || len(cols) < n {
		return
	}
	if thickness > 1 {
		for i := 0; i < n-1; i++ {
			cb.drawThickLine(v[i], cols[i], v[i+1], cols[i+1], thickness)
		}
		if closed {
			cb.drawThickLine(v[n-1], cols[n-1], v[0], cols[0], thickness)
		}
		return
	}
	verts, idx, ok := cb.addIndexedPrimitive(n, polylineIndexCount(n, closed), lineRenderFlags(cb.cur.CurRenderFlags, true)|alphaFlagsOf(cols[:n]))
	if !ok {
		return
	}
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: PackColor(cols[i])}
	}
	polylineIndices(idx, n, closed)
}

// drawThickLine records a segment the backend expands into a camera facing
// quad. Vertices 0 and 1 hold the endpoints, the rest are placeholders for the
// expanded triangle pair. The thickness goes to the entry's side channel.
func (cb *CommandBuffer) drawThickLine(v0 mgl32.Vec3, c0 ColorB, v1 mgl32.Vec3, c1 ColorB, thickness float32) {
	debugAssert(thickness > 0, "thickness must be positive")
	d := cb.cur
	thickOffs := len(d.ThickLines)
	d.ThickLines = append(d.ThickLines, thickness)

	flags := triangleRenderFlags(d.CurRenderFlags, false) | ThickLineParam | alphaFlags(c0) | alphaFlags(c1)
	verts, e := cb.addPrimitive(6, flags)
	if e.Line.Kind != LineThick {
		e.Line = LineParams{Kind: LineThick, ThicknessOffs: uint32(thickOffs)}
	}
	e.Line.NumThick++

	p0 := Vertex{Pos: v0, Color: PackColor(c0)}
	p1 := Vertex{Pos: v1, Color: PackColor(c1)}
	verts[0], verts[1] = p0, p1
	verts[2], verts[3], verts[4], verts[5] = p1, p0, p1, p0
}

func (cb *CommandBuffer) DrawTriangle(v0 mgl32.Vec3, c0 ColorB, v1 mgl32.Vec3, c1 ColorB, v2 mgl32.Vec3, c2 ColorB) {
	flags := triangleRenderFlags(cb.cur.CurRenderFlags, false) | alphaFlags(c0) | alphaFlags(c1) | alphaFlags(c2)
	verts, _ := cb.addPrimitive(3, flags)
	verts[0] = Vertex{Pos: v0, Color: PackColor(c0)}
	verts[1] = Vertex{Pos: v1, Color: PackColor(c1)}
	verts[2] = Vertex{Pos: v2, Color: PackColor(c2)}
}

func validTriangleList(n int) bool {
	debugAssert(n >= 3 && n%3 == 0, "triangle list needs a multiple of 3 of at least 3, got %d", n)
	return n >= 3 && n%3 == 0
}

func (cb *CommandBuffer) DrawTriangles(v []mgl32.Vec3, col ColorB) {
	if !validTriangleList(len(v)) {
		return
	}
	verts, _ := cb.addPrimitive(len(v), triangleRenderFlags(cb.cur.CurRenderFlags, false)|alphaFlags(col))
	color := PackColor(col)
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: color}
	}
}

func (cb *CommandBuffer) DrawTrianglesColored(v []mgl32.Vec3, cols []ColorB) {
	if !validTriangleList(len(v)) || len(cols) < len(v) {
		return
	}
	verts, _ := cb.addPrimitive(len(v), triangleRenderFlags(cb.cur.CurRenderFlags, false)|alphaFlagsOf(cols[:len(v)]))
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: PackColor(cols[i])}
	}
}

func (cb *CommandBuffer) DrawTrianglesIndexed(v []mgl32.Vec3, ind []Index, col ColorB) {
	debugAssert(len(v) >= 3, "indexed triangles need at least 3 vertices")
	if len(v) < 3 || !validTriangleList(len(ind)) {
		return
	}
	verts, idx, ok := cb.addIndexedPrimitive(len(v), len(ind), triangleRenderFlags(cb.cur.CurRenderFlags, true)|alphaFlags(col))
	if !ok {
		return
	}
	color := PackColor(col)
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: color}
	}
	copy(idx, ind)
}

func (cb *CommandBuffer) DrawTrianglesIndexedColored(v []mgl32.Vec3, cols []ColorB, ind []Index) {
	debugAssert(len(v) >= 3, "indexed triangles need at least 3 vertices")
	if len(v) < 3 || len(cols) < len(v) || !validTriangleList(len(ind)) {
		return
	}
	verts, idx, ok := cb.addIndexedPrimitive(len(v), len(ind), triangleRenderFlags(cb.cur.CurRenderFlags, true)|alphaFlagsOf(cols[:len(v)]))
	if !ok {
		return
	}
	for i := range v {
		verts[i] = Vertex{Pos: v[i], Color: PackColor(cols[i])}
	}
	copy(idx, ind)
}
