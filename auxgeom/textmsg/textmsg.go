// Package textmsg stores the 2D and 3D text labels recorded alongside a frame of
// auxiliary geometry. Messages are packed into a single byte arena with a fixed
// budget; once the budget is spent further messages are dropped.
package textmsg

import (
	"encoding/binary"
	"iter"
	"math"
	"unicode/utf8"

	"github.com/go-gl/mathgl/mgl32"
)

type Flags uint32

const (
	Center Flags = 1 << iota
	Right
	CenterV
	_
	Screen2D
	FixedSize
	Monospace
)

// MaxTextLen is the longest text kept per message; longer text is truncated.
const MaxTextLen = 511

// DefaultBudget is used when a buffer is created with a non-positive budget.
const DefaultBudget = 64 << 10

// pos(12) color(4) scale(4) flags(4) len(2)
const headerSize = 26

type Message struct {
	Pos   mgl32.Vec3
	Color uint32
	Scale float32
	Flags Flags
	Text  string
}

type Buffer struct {
	budget int
	data   []byte
	count  int
}

func NewBuffer(budget int) *Buffer {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Buffer{budget: budget}
}

// alloc reserves n bytes or returns nil when the budget would be exceeded.
func (b *Buffer) alloc(n int) []byte {
	start := len(b.data)
	if start+n > b.budget {
		return nil
	}
	if cap(b.data) < start+n {
		grown := make([]byte, start, min(b.budget, max(2*cap(b.data), start+n)))
		copy(grown, b.data)
		b.data = grown
	}
	b.data = b.data[:start+n]
	return b.data[start : start+n : start+n]
}

// Push records a message. It reports false when the message was dropped.
func (b *Buffer) Push(m Message) bool {
	text := m.Text
	if len(text) > MaxTextLen {
		n := MaxTextLen
		for n > 0 && !utf8.RuneStart(text[n]) {
			n--
		}
		text = text[:n]
	}
	dst := b.alloc(headerSize + len(text))
	if dst == nil {
		return false
	}
	le := binary.LittleEndian
	le.PutUint32(dst[0:], math.Float32bits(m.Pos.X()))
	le.PutUint32(dst[4:], math.Float32bits(m.Pos.Y()))
	le.PutUint32(dst[8:], math.Float32bits(m.Pos.Z()))
	le.PutUint32(dst[12:], m.Color)
	le.PutUint32(dst[16:], math.Float32bits(m.Scale))
	le.PutUint32(dst[20:], uint32(m.Flags))
	le.PutUint16(dst[24:], uint16(len(text)))
	copy(dst[headerSize:], text)
	b.count++
	return true
}

// Clear drops all messages. With posOnly the arena is kept for reuse,
// otherwise its memory is released.
func (b *Buffer) Clear(posOnly bool) {
	b.count = 0
	if posOnly {
		b.data = b.data[:0]
		return
	}
	b.data = nil
}

func (b *Buffer) Len() int      { return b.count }
func (b *Buffer) Size() int     { return len(b.data) }
func (b *Buffer) Budget() int   { return b.budget }
func (b *Buffer) Capacity() int { return cap(b.data) }
func (b *Buffer) Empty() bool   { return b.count == 0 }

// All yields the messages in push order.
func (b *Buffer) All() iter.Seq[Message] {
	return func(yield func(Message) bool) {
		le := binary.LittleEndian
		data := b.data
		for len(data) >= headerSize {
			n := int(le.Uint16(data[24:]))
			m := Message{
				Pos: mgl32.Vec3{
					math.Float32frombits(le.Uint32(data[0:])),
					math.Float32frombits(le.Uint32(data[4:])),
					math.Float32frombits(le.Uint32(data[8:])),
				},
				Color: le.Uint32(data[12:]),
				Scale: math.Float32frombits(le.Uint32(data[16:])),
				Flags: Flags(le.Uint32(data[20:])),
				Text:  string(data[headerSize : headerSize+n]),
			}
			if !yield(m) {
				return
			}
			data = data[headerSize+n:]
		}
	}
}

// Messages returns a copy of every recorded message.
func (b *Buffer) Messages() []Message {
	out := make([]Message, 0, b.count)
	for m := range b.All() {
		out = append(out, m)
	}
	return out
}
