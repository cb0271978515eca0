package auxgeom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/debugdraw/auxgeom/textmsg"
)

type TextOptions struct {
	Color ColorB
	Scale float32
	Flags textmsg.Flags
}

// DrawText queues a text message with the current snapshot. It reports false
// when the frame's text budget is spent and the message was dropped.
func (cb *CommandBuffer) DrawText(pos mgl32.Vec3, opts TextOptions, format string, args ...any) bool {
	if format == "" {
		return false
	}
	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return cb.cur.TextMessages.Push(textmsg.Message{
		Pos:   pos,
		Color: PackColor(opts.Color),
		Scale: scale,
		Flags: opts.Flags,
		Text:  text,
	})
}

// Draw2DLabel queues screen space text at pixel position x, y.
func (cb *CommandBuffer) Draw2DLabel(x, y, scale float32, col ColorB, center bool, format string, args ...any) bool {
	flags := textmsg.Screen2D | textmsg.FixedSize | textmsg.Monospace
	if center {
		flags |= textmsg.Center
	}
	return cb.DrawText(mgl32.Vec3{x, y, 0.5}, TextOptions{Color: col, Scale: scale, Flags: flags}, format, args...)
}
