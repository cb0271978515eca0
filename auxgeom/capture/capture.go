// Package capture records flushed aux geometry to a compressed stream so a
// frame sequence can be inspected or replayed offline. Files are a zstd
// stream of msgpack encoded Frames (".auxgeom.msgpack.zst").
package capture

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gekko3d/debugdraw/auxgeom"
	"github.com/gekko3d/debugdraw/auxgeom/textmsg"
)

var ErrClosed = errors.New("capture: recorder closed")

type Kind uint8

const (
	KindGeometry Kind = iota
	KindText
	kindEnd
)

type Vertex struct {
	Pos   [3]float32 `msgpack:"p"`
	Color uint32     `msgpack:"c"`
}

type Object struct {
	World         [16]float32 `msgpack:"world"`
	WorldRotation [9]float32  `msgpack:"rot"`
	Color         uint32      `msgpack:"color"`
	Size          float32     `msgpack:"size"`
	Shaded        bool        `msgpack:"shaded"`
}

// Entry is a self contained copy of one push buffer entry. Indices are
// relative to Vertices.
type Entry struct {
	Flags     uint32    `msgpack:"flags"`
	Transform int       `msgpack:"trans"`
	Ortho     []float32 `msgpack:"ortho,omitempty"`
	Vertices  []Vertex  `msgpack:"v,omitempty"`
	Indices   []uint32  `msgpack:"i,omitempty"`
	Thickness []float32 `msgpack:"thick,omitempty"`
	Object    *Object   `msgpack:"obj,omitempty"`
}

func (e *Entry) RenderFlags() auxgeom.RenderFlags { return auxgeom.RenderFlags(e.Flags) }

type Text struct {
	Pos   [3]float32 `msgpack:"p"`
	Color uint32     `msgpack:"c"`
	Scale float32    `msgpack:"s"`
	Flags uint32     `msgpack:"f"`
	Text  string     `msgpack:"t"`
}

type Frame struct {
	Seq      uint64  `msgpack:"seq"`
	Kind     Kind    `msgpack:"kind"`
	Snapshot string  `msgpack:"snapshot,omitempty"`
	Begin    int     `msgpack:"begin"`
	End      int     `msgpack:"end"`
	Reset    bool    `msgpack:"reset"`
	Entries  []Entry `msgpack:"entries,omitempty"`
	Text     []Text  `msgpack:"text,omitempty"`
}

// Recorder is an auxgeom.Backend that writes every flush to a stream and
// forwards it to Next. Encoding errors are sticky and reported by Err and Close.
type Recorder struct {
	Next auxgeom.Backend

	mu     sync.Mutex
	zw     *zstd.Encoder
	enc    *msgpack.Encoder
	closer io.Closer
	seq    uint64
	err    error
	closed bool
}

func NewRecorder(w io.Writer, next auxgeom.Backend) (*Recorder, error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	if next == nil {
		next = auxgeom.NullBackend{}
	}
	return &Recorder{Next: next, zw: zw, enc: msgpack.NewEncoder(zw)}, nil
}

// Create records into a new file at path.
func Create(path string, next auxgeom.Backend) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	r, err := NewRecorder(f, next)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

func (r *Recorder) write(f *Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		r.err = errors.Join(r.err, ErrClosed)
		return
	}
	if r.err != nil {
		return
	}
	f.Seq = r.seq
	r.seq++
	if err := r.enc.Encode(f); err != nil {
		r.err = fmt.Errorf("capture: encoding frame %d: %w", f.Seq, err)
	}
}

func (r *Recorder) Flush(data auxgeom.Packaged, begin, end int, reset bool) {
	f := &Frame{
		Kind:     KindGeometry,
		Snapshot: data.ID().String(),
		Begin:    begin,
		End:      end,
		Reset:    reset,
	}
	if begin < end {
		pb := data.PushBuffer()
		f.Entries = make([]Entry, 0, end-begin)
		for i := begin; i < end; i++ {
			f.Entries = append(f.Entries, copyEntry(data, &pb[i]))
		}
	}
	r.write(f)
	r.Next.Flush(data, begin, end, reset)
}

func (r *Recorder) FlushTextMessages(tm *textmsg.Buffer, reset bool) {
	if !tm.Empty() {
		f := &Frame{Kind: KindText, Reset: reset, Text: make([]Text, 0, tm.Len())}
		for m := range tm.All() {
			f.Text = append(f.Text, Text{
				Pos:   m.Pos,
				Color: m.Color,
				Scale: m.Scale,
				Flags: uint32(m.Flags),
				Text:  m.Text,
			})
		}
		r.write(f)
	}
	r.Next.FlushTextMessages(tm, reset)
}

func copyEntry(data auxgeom.Packaged, e *auxgeom.PushBufferEntry) Entry {
	out := Entry{Flags: uint32(e.Flags), Transform: e.TransMatrixIdx}
	if m, ok := data.OrthoMatrix(e); ok {
		out.Ortho = m[:]
	}
	if e.PrimType() == auxgeom.PrimObject {
		p := data.Object(e)
		out.Object = &Object{
			World:         p.World,
			WorldRotation: p.WorldRotation,
			Color:         p.Color,
			Size:          p.Size,
			Shaded:        p.Shaded,
		}
		return out
	}
	verts := data.EntryVertices(e)
	out.Vertices = make([]Vertex, len(verts))
	for i, v := range verts {
		out.Vertices[i] = Vertex{Pos: v.Pos, Color: v.Color}
	}
	if idx := data.EntryIndices(e); len(idx) > 0 {
		out.Indices = make([]uint32, len(idx))
		for i, v := range idx {
			out.Indices[i] = uint32(v)
		}
	}
	if th := data.Thickness(e); len(th) > 0 {
		out.Thickness = append([]float32(nil), th...)
	}
	return out
}

func (r *Recorder) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq
}

func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close writes the end marker and closes the stream and the file, if any.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return r.err
	}
	r.closed = true

	errs := []error{r.err}
	if r.err == nil {
		errs = append(errs, r.enc.Encode(&Frame{Seq: r.seq, Kind: kindEnd}))
	}
	errs = append(errs, r.zw.Close())
	if r.closer != nil {
		errs = append(errs, r.closer.Close())
	}
	return errors.Join(errs...)
}

// Reader decodes frames written by a Recorder.
type Reader struct {
	zr     *zstd.Decoder
	dec    *msgpack.Decoder
	closer io.Closer
	done   bool
}

func NewReader(r io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return &Reader{zr: zr, dec: msgpack.NewDecoder(zr)}, nil
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (*Frame, error) {
	if r.done {
		return nil, io.EOF
	}
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			r.done = true
			return nil, io.EOF
		}
		return nil, fmt.Errorf("capture: decoding frame: %w", err)
	}
	if f.Kind == kindEnd {
		r.done = true
		return nil, io.EOF
	}
	return &f, nil
}

// ReadAll returns every remaining frame.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var out []*Frame
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

func (r *Reader) Close() error {
	r.zr.Close()
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ToMat4 converts a stored matrix back to mathgl form.
func ToMat4(m []float32) mgl32.Mat4 {
	var out mgl32.Mat4
	copy(out[:], m)
	return out
}
