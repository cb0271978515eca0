package debugdraw

import "github.com/gekko3d/debugdraw/auxgeom"

// ScreenLabel is a line of debug text in screen pixels.
type ScreenLabel struct {
	Text     string
	Position [2]float32 // Pixels, top-left
	Scale    float32
	Color    [4]float32
	Centered bool
}

func (l *ScreenLabel) Draw(d auxgeom.Drawer) bool {
	scale := l.Scale
	if scale == 0 {
		scale = 1
	}
	return d.Draw2DLabel(l.Position[0], l.Position[1], scale, auxgeom.ColorF(l.Color), l.Centered, "%s", l.Text)
}
