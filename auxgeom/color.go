package auxgeom

import (
	"golang.org/x/image/colornames"
)

// ColorB is an 8 bit per channel colour.
type ColorB struct {
	R, G, B, A uint8
}

func RGBA(r, g, b, a uint8) ColorB {
	return ColorB{R: r, G: g, B: b, A: a}
}

// ColorF converts a normalised float colour, clamping each channel.
func ColorF(c [4]float32) ColorB {
	conv := func(f float32) uint8 {
		switch {
		case f <= 0:
			return 0
		case f >= 1:
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return ColorB{conv(c[0]), conv(c[1]), conv(c[2]), conv(c[3])}
}

// NamedColor looks up an SVG colour name such as "tomato" or "steelblue".
func NamedColor(name string, alpha uint8) (ColorB, bool) {
	c, ok := colornames.Map[name]
	if !ok {
		return ColorB{}, false
	}
	return ColorB{c.R, c.G, c.B, alpha}, true
}

var (
	White  = ColorB{255, 255, 255, 255}
	Black  = ColorB{0, 0, 0, 255}
	Red    = ColorB{255, 0, 0, 255}
	Green  = ColorB{0, 255, 0, 255}
	Blue   = ColorB{0, 0, 255, 255}
	Yellow = ColorB{255, 255, 0, 255}
)

// PackColor packs into the vertex colour layout a<<24 | r<<16 | g<<8 | b.
func PackColor(c ColorB) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func UnpackColor(v uint32) ColorB {
	return ColorB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: uint8(v >> 24)}
}

// ScaleColor scales the RGB channels and keeps alpha.
func ScaleColor(c ColorB, scale float32) ColorB {
	s := func(v uint8) uint8 {
		f := float32(v) * scale
		if f > 255 {
			return 255
		}
		if f < 0 {
			return 0
		}
		return uint8(f)
	}
	return ColorB{s(c.R), s(c.G), s(c.B), c.A}
}

// alphaFlags turns on alpha blending for partially transparent colours.
func alphaFlags(c ColorB) RenderFlags {
	if c.A > 0 && c.A < 255 {
		return AlphaBlended
	}
	return 0
}

func alphaFlagsOf(cols []ColorB) RenderFlags {
	for _, c := range cols {
		if f := alphaFlags(c); f != 0 {
			return f
		}
	}
	return 0
}
