package document

import (
	"fmt"
	"slices"

	"github.com/dshills/textkernel/internal/engine/buffer"
)

// Gravity decides where a position moves when text is inserted exactly
// at it.
type Gravity uint8

const (
	// GravityForward moves the position to the end of the inserted text.
	GravityForward Gravity = iota
	// GravityBackward keeps the position before the inserted text.
	GravityBackward
)

// String returns the name of the gravity.
func (g Gravity) String() string {
	if g == GravityBackward {
		return "backward"
	}
	return "forward"
}

// UpdatePosition returns pos adapted to the change c.
//
// Positions inside the erased region collapse to its beginning. Positions
// after it shift with the text. An insertion exactly at pos moves it to
// the end of the inserted text unless gravity is GravityBackward.
func UpdatePosition(pos buffer.Position, c Change, gravity Gravity) buffer.Position {
	if !c.Erased.IsEmpty() {
		pos = adaptToDeletion(pos, c.Erased.Beginning(), c.Erased.End())
	}
	if !c.Inserted.IsEmpty() {
		pos = adaptToInsertion(pos, c.Inserted.Beginning(), c.Inserted.End(), gravity)
	}
	return pos
}

func adaptToDeletion(pos, first, second buffer.Position) buffer.Position {
	switch {
	case pos.Before(second):
		if !pos.After(first) {
			return pos
		}
		return first
	case pos.Line > second.Line:
		pos.Line -= second.Line - first.Line
	case pos.Line == first.Line:
		pos.Offset -= second.Offset - first.Offset
	default:
		pos.Line -= second.Line - first.Line
		pos.Offset -= second.Offset - first.Offset
	}
	return pos
}

func adaptToInsertion(pos, first, second buffer.Position, gravity Gravity) buffer.Position {
	switch {
	case pos.Before(first):
		return pos
	case pos == first && gravity == GravityBackward:
		return pos
	case pos.Line > first.Line:
		pos.Line += second.Line - first.Line
	default:
		pos.Line += second.Line - first.Line
		pos.Offset += second.Offset - first.Offset
	}
	return pos
}

// Point is a position in a document that follows changes of the text.
type Point struct {
	doc      *Document
	pos      buffer.Position
	gravity  Gravity
	closed   bool
	onChange func(*Point)
}

// NewPoint creates a point at pos that adapts to every change of d.
// Close the point when it is no longer needed.
func (d *Document) NewPoint(pos buffer.Position, gravity Gravity) (*Point, error) {
	if err := d.checkPosition(pos); err != nil {
		return nil, err
	}
	p := &Point{doc: d, pos: pos, gravity: gravity}
	d.points = append(d.points, p)
	return p, nil
}

// Position returns the current position of the point.
func (p *Point) Position() buffer.Position {
	return p.pos
}

// Gravity returns the gravity of the point.
func (p *Point) Gravity() Gravity {
	return p.gravity
}

// SetGravity changes the gravity of the point.
func (p *Point) SetGravity(g Gravity) {
	p.gravity = g
}

// OnChange sets a function called whenever a change moves the point.
func (p *Point) OnChange(fn func(*Point)) {
	p.onChange = fn
}

// MoveTo moves the point to pos.
func (p *Point) MoveTo(pos buffer.Position) error {
	if p.closed {
		return ErrPointClosed
	}
	if err := p.doc.checkPosition(pos); err != nil {
		return fmt.Errorf("move point: %w", err)
	}
	p.pos = pos
	return nil
}

// IsClosed returns true if the point no longer follows the document.
func (p *Point) IsClosed() bool {
	return p.closed
}

// Close detaches the point from the document.
func (p *Point) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if i := slices.Index(p.doc.points, p); i >= 0 {
		p.doc.points = slices.Delete(p.doc.points, i, i+1)
	}
}

func (p *Point) update(c Change) {
	moved := UpdatePosition(p.pos, c, p.gravity)
	if moved == p.pos {
		return
	}
	p.pos = moved
	if p.onChange != nil {
		p.onChange(p)
	}
}

func (p *Point) reset() {
	p.pos = buffer.Position{}
}
