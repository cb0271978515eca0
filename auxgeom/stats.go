package auxgeom

import (
	"fmt"
	"sync"

	"github.com/gekko3d/debugdraw/auxgeom/textmsg"
)

// FlushStats counts what a backend was asked to draw.
type FlushStats struct {
	Flushes      int
	Batches      int
	Entries      int
	Points       int
	Lines        int
	Triangles    int
	ThickLines   int
	Objects      int
	TextMessages int
}

func (s *FlushStats) Merge(o FlushStats) {
	s.Flushes += o.Flushes
	s.Batches += o.Batches
	s.Entries += o.Entries
	s.Points += o.Points
	s.Lines += o.Lines
	s.Triangles += o.Triangles
	s.ThickLines += o.ThickLines
	s.Objects += o.Objects
	s.TextMessages += o.TextMessages
}

func (s FlushStats) String() string {
	return fmt.Sprintf("flushes=%d batches=%d entries=%d points=%d lines=%d tris=%d thick=%d objects=%d text=%d",
		s.Flushes, s.Batches, s.Entries, s.Points, s.Lines, s.Triangles, s.ThickLines, s.Objects, s.TextMessages)
}

// addEntry accounts for one push buffer entry.
func (s *FlushStats) addEntry(e *PushBufferEntry) {
	s.Entries++
	switch e.PrimType() {
	case PrimPoints:
		s.Points += int(e.NumVertices)
	case PrimLines:
		s.Lines += int(e.NumVertices / 2)
	case PrimLinesIndexed:
		s.Lines += int(e.NumIndices / 2)
	case PrimTriangles:
		if e.Line.Kind == LineThick {
			s.ThickLines += int(e.Line.NumThick)
		} else {
			s.Triangles += int(e.NumVertices / 3)
		}
	case PrimTrianglesIndexed:
		s.Triangles += int(e.NumIndices / 3)
	case PrimObject:
		s.Objects++
	}
}

// StatsBackend records FlushStats and forwards to Next.
type StatsBackend struct {
	Next Backend

	mu    sync.Mutex
	stats FlushStats
}

func NewStatsBackend(next Backend) *StatsBackend {
	if next == nil {
		next = NullBackend{}
	}
	return &StatsBackend{Next: next}
}

func (b *StatsBackend) Flush(data Packaged, begin, end int, reset bool) {
	var s FlushStats
	s.Flushes = 1
	for _, batch := range Batches(data, begin, end) {
		s.Batches++
		for _, e := range batch.Entries {
			s.addEntry(e)
		}
	}
	b.mu.Lock()
	b.stats.Merge(s)
	b.mu.Unlock()

	b.Next.Flush(data, begin, end, reset)
}

func (b *StatsBackend) FlushTextMessages(tm *textmsg.Buffer, reset bool) {
	b.mu.Lock()
	b.stats.TextMessages += tm.Len()
	b.mu.Unlock()

	b.Next.FlushTextMessages(tm, reset)
}

func (b *StatsBackend) Stats() FlushStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Reset returns the stats gathered so far and starts over.
func (b *StatsBackend) Reset() FlushStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.stats
	b.stats = FlushStats{}
	return s
}
