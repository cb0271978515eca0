package auxgeom

import "fmt"

// RenderFlags packs the caller visible render state in the high bits and the
// primitive tag plus its parameter in the low bits.
type RenderFlags uint32

const (
	Mode2D3DShift    = 31
	AlphaBlendShift  = 29
	DrawInFrontShift = 28
	FillModeShift    = 26
	CullModeShift    = 24
	DepthWriteShift  = 23
	DepthTestShift   = 22
)

const (
	Mode2D3DMask    RenderFlags = 0x1 << Mode2D3DShift
	AlphaBlendMask  RenderFlags = 0x3 << AlphaBlendShift
	DrawInFrontMask RenderFlags = 0x1 << DrawInFrontShift
	FillModeMask    RenderFlags = 0x3 << FillModeShift
	CullModeMask    RenderFlags = 0x3 << CullModeShift
	DepthWriteMask  RenderFlags = 0x1 << DepthWriteShift
	DepthTestMask   RenderFlags = 0x1 << DepthTestShift

	PublicParamsMask = Mode2D3DMask | AlphaBlendMask | DrawInFrontMask | FillModeMask |
		CullModeMask | DepthWriteMask | DepthTestMask
)

const (
	Mode3D RenderFlags = 0x0 << Mode2D3DShift
	Mode2D RenderFlags = 0x1 << Mode2D3DShift

	AlphaNone     RenderFlags = 0x0 << AlphaBlendShift
	AlphaAdditive RenderFlags = 0x1 << AlphaBlendShift
	AlphaBlended  RenderFlags = 0x2 << AlphaBlendShift

	DrawInFrontOff RenderFlags = 0x0 << DrawInFrontShift
	DrawInFrontOn  RenderFlags = 0x1 << DrawInFrontShift

	FillSolid     RenderFlags = 0x0 << FillModeShift
	FillWireframe RenderFlags = 0x1 << FillModeShift
	FillPoint     RenderFlags = 0x2 << FillModeShift

	CullNone  RenderFlags = 0x0 << CullModeShift
	CullFront RenderFlags = 0x1 << CullModeShift
	CullBack  RenderFlags = 0x2 << CullModeShift

	DepthWriteOn  RenderFlags = 0x0 << DepthWriteShift
	DepthWriteOff RenderFlags = 0x1 << DepthWriteShift

	DepthTestOn  RenderFlags = 0x0 << DepthTestShift
	DepthTestOff RenderFlags = 0x1 << DepthTestShift
)

const (
	Default3DRenderFlags = Mode3D | AlphaNone | DrawInFrontOff | FillSolid | CullBack | DepthWriteOn | DepthTestOn
	Default2DRenderFlags = Mode2D | AlphaNone | DrawInFrontOff | FillSolid | CullBack | DepthWriteOn | DepthTestOn
)

func (f RenderFlags) with(mask, v RenderFlags) RenderFlags { return f&^mask | v&mask }

func (f RenderFlags) Mode2D3D() RenderFlags    { return f & Mode2D3DMask }
func (f RenderFlags) AlphaBlend() RenderFlags  { return f & AlphaBlendMask }
func (f RenderFlags) DrawInFront() RenderFlags { return f & DrawInFrontMask }
func (f RenderFlags) FillMode() RenderFlags    { return f & FillModeMask }
func (f RenderFlags) CullMode() RenderFlags    { return f & CullModeMask }
func (f RenderFlags) DepthWrite() RenderFlags  { return f & DepthWriteMask }
func (f RenderFlags) DepthTest() RenderFlags   { return f & DepthTestMask }

func (f RenderFlags) WithMode2D3D(v RenderFlags) RenderFlags    { return f.with(Mode2D3DMask, v) }
func (f RenderFlags) WithAlphaBlend(v RenderFlags) RenderFlags  { return f.with(AlphaBlendMask, v) }
func (f RenderFlags) WithDrawInFront(v RenderFlags) RenderFlags { return f.with(DrawInFrontMask, v) }
func (f RenderFlags) WithFillMode(v RenderFlags) RenderFlags    { return f.with(FillModeMask, v) }
func (f RenderFlags) WithCullMode(v RenderFlags) RenderFlags    { return f.with(CullModeMask, v) }
func (f RenderFlags) WithDepthWrite(v RenderFlags) RenderFlags  { return f.with(DepthWriteMask, v) }
func (f RenderFlags) WithDepthTest(v RenderFlags) RenderFlags   { return f.with(DepthTestMask, v) }

func (f RenderFlags) Public() RenderFlags { return f & PublicParamsMask }

// PrimType tags what a push buffer entry draws.
type PrimType uint32

const (
	PrimPoints PrimType = iota
	PrimLines
	PrimLinesIndexed
	PrimTriangles
	PrimTrianglesIndexed
	PrimObject
)

var primTypeNames = [...]string{"points", "lines", "lines-indexed", "triangles", "triangles-indexed", "object"}

func (p PrimType) String() string {
	if int(p) < len(primTypeNames) {
		return primTypeNames[p]
	}
	return fmt.Sprintf("PrimType(%d)", uint32(p))
}

// ObjectType is the analytic shape of a PrimObject entry.
type ObjectType uint32

const (
	ObjSphere ObjectType = iota
	ObjCone
	ObjCylinder
	ObjDisk
	ObjQuad
)

const (
	primTypeShift = 19
	primTypeMask  = RenderFlags(0x7) << primTypeShift

	privateParamMask = RenderFlags(1)<<primTypeShift - 1

	// ThickLineParam marks a triangle list that carries thick line segments.
	ThickLineParam RenderFlags = 0x1
)

func (f RenderFlags) PrimType() PrimType {
	return PrimType((f & primTypeMask) >> primTypeShift)
}

func (f RenderFlags) PointSize() uint8 {
	return uint8(f & privateParamMask)
}

func (f RenderFlags) ObjectType() ObjectType {
	return ObjectType(f & privateParamMask)
}

func (f RenderFlags) IsThickLine() bool {
	return f.PrimType() == PrimTriangles && f&privateParamMask&ThickLineParam != 0
}

func (f RenderFlags) IsIndexed() bool {
	p := f.PrimType()
	return p == PrimLinesIndexed || p == PrimTrianglesIndexed
}

func pointRenderFlags(cur RenderFlags, size uint8) RenderFlags {
	return cur | RenderFlags(PrimPoints)<<primTypeShift | RenderFlags(size)
}

func lineRenderFlags(cur RenderFlags, indexed bool) RenderFlags {
	if indexed {
		return cur | RenderFlags(PrimLinesIndexed)<<primTypeShift
	}
	return cur | RenderFlags(PrimLines)<<primTypeShift
}

func triangleRenderFlags(cur RenderFlags, indexed bool) RenderFlags {
	if indexed {
		return cur | RenderFlags(PrimTrianglesIndexed)<<primTypeShift
	}
	return cur | RenderFlags(PrimTriangles)<<primTypeShift
}

func objectRenderFlags(cur RenderFlags, t ObjectType) RenderFlags {
	return cur | RenderFlags(PrimObject)<<primTypeShift | RenderFlags(t)
}
