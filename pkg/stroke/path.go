// Package stroke records the pen path as an append-only log of colored
// samples separated by pen-lift markers.
package stroke

import (
	"image"
	"image/color"
)

// Kind tags a path entry.
type Kind int

const (
	// Sample is a point drawn with a color.
	Sample Kind = iota
	// Lift breaks the stroke: the next sample starts a new segment.
	Lift
)

func (k Kind) String() string {
	if k == Lift {
		return "lift"
	}
	return "sample"
}

// Entry is one path element. Point and Color are only meaningful for samples.
type Entry struct {
	Kind  Kind        `json:"kind"`
	Point image.Point `json:"point"`
	Color color.RGBA  `json:"color"`
}

// IsLift reports whether e is a pen-lift marker.
func (e Entry) IsLift() bool {
	return e.Kind == Lift
}

// Stats summarizes a path.
type Stats struct {
	Samples  int `json:"samples"`
	Lifts    int `json:"lifts"`
	Segments int `json:"segments"`
}

// Path is an ordered log of samples and lifts. It is not safe for
// concurrent use; the paint loop owns it.
type Path struct {
	entries []Entry
}

// New returns an empty path.
func New() *Path {
	return &Path{}
}

// Append records a sample. c is stored by value, so later pen color changes
// never affect it. Points are not bounds-checked.
func (p *Path) Append(pt image.Point, c color.RGBA) {
	p.entries = append(p.entries, Entry{Kind: Sample, Point: pt, Color: c})
}

// LiftPen records a segment break.
func (p *Path) LiftPen() {
	p.entries = append(p.entries, Entry{Kind: Lift})
}

// Clear empties the path.
func (p *Path) Clear() {
	p.entries = nil
}

// Len returns the number of entries, lifts included.
func (p *Path) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the log.
func (p *Path) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Walk replays the path from the start. fn is called once per sample that
// has a predecessor in the same segment, with that predecessor as prev.
// Lifts reset the predecessor; the first sample of a segment only sets it.
func (p *Path) Walk(fn func(prev, cur Entry)) {
	var prev Entry
	hasPrev := false
	for _, e := range p.entries {
		if e.IsLift() {
			hasPrev = false
			continue
		}
		if hasPrev {
			fn(prev, e)
		}
		prev = e
		hasPrev = true
	}
}

// Segments splits the path at lift markers. Empty segments are dropped.
func (p *Path) Segments() [][]Entry {
	var segs [][]Entry
	var cur []Entry
	for _, e := range p.entries {
		if e.IsLift() {
			if len(cur) > 0 {
				segs = append(segs, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, e)
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

// Stats counts samples, lifts and non-empty segments.
func (p *Path) Stats() Stats {
	var s Stats
	inSegment := false
	for _, e := range p.entries {
		if e.IsLift() {
			s.Lifts++
			inSegment = false
			continue
		}
		s.Samples++
		if !inSegment {
			s.Segments++
			inSegment = true
		}
	}
	return s
}
