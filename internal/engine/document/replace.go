package document

import (
	"fmt"
	"slices"

	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/engine/history"
)

// Replace replaces the text in region with text and returns the end of
// the inserted text.
//
// The region must lie within the document and, if the document is
// narrowed, within the accessible region. Replacing an empty region with
// empty text does nothing and returns the beginning of the region.
//
// Listeners are notified before and after the change. On failure the
// document is unchanged and listeners receive an empty change.
func (d *Document) Replace(region buffer.Region, text string) (buffer.Position, error) {
	return d.ReplaceLines(region, buffer.SplitLines(text))
}

// ReplaceLines is Replace with the text already split into lines. Each
// terminated segment ends a line with its own newline; a terminated
// last segment is followed by an empty line.
func (d *Document) ReplaceLines(region buffer.Region, segments []buffer.Segment) (buffer.Position, error) {
	if d.changing {
		return buffer.Position{}, fmt.Errorf("replace %s: %w", region, ErrIllegalState)
	}
	if d.readOnly {
		return buffer.Position{}, fmt.Errorf("replace %s: %w", region, ErrReadOnly)
	}
	if err := d.checkRegion(region); err != nil {
		return buffer.Position{}, err
	}
	if d.narrowed && !d.AccessibleRegion().Encompasses(region) {
		return buffer.Position{}, &RegionError{Region: region, Err: ErrAccessViolation}
	}

	if len(segments) == 0 || segments[len(segments)-1].Terminated {
		segments = append(slices.Clone(segments), buffer.Segment{})
	}
	empty := len(segments) == 1 && segments[0].Text == ""

	b, e := region.Beginning(), region.End()
	if region.IsEmpty() && empty {
		return b, nil
	}

	d.changing = true
	defer func() { d.changing = false }()

	modified := d.IsModified()
	insertedLen := 0
	for _, s := range segments {
		insertedLen += len(s.Text)
	}

	erasedLen, erased := d.collectErased(b, e)

	// Lines after the first inserted line are allocated before anything
	// changes. The last one takes the rest of the last erased line.
	var newLines []*buffer.Line
	inserted := buffer.NewRegion(b, buffer.Pos(b.Line, b.Offset+len(segments[0].Text)))
	if len(segments) > 1 {
		last := d.lines.At(e.Line)
		newLines = make([]*buffer.Line, len(segments)-1)
		for i, s := range segments[1:] {
			if s.Terminated {
				newLines[i] = buffer.NewLine(s.Text, s.Newline, d.revision+1)
			} else {
				newLines[i] = buffer.NewLine(s.Text+last.Text()[e.Offset:], last.Newline(), d.revision+1)
			}
		}
		tail := segments[len(segments)-1]
		inserted.Second = buffer.Pos(b.Line+len(newLines), len(tail.Text))
	}

	d.fireAboutToBeChanged()

	line := d.lines.At(b.Line).Text()
	var err error
	switch {
	case b.Line == e.Line && empty:
		// erase within one line
		err = d.lines.SetText(b.Line, line[:b.Offset]+line[e.Offset:])
	case region.IsEmpty() && newLines == nil:
		// insert without line breaks
		err = d.lines.SetText(b.Line, line[:b.Offset]+segments[0].Text+line[b.Offset:])
	case b.Line == e.Line && newLines == nil:
		// replace within one line
		err = d.lines.SetText(b.Line, line[:b.Offset]+segments[0].Text+line[e.Offset:])
	default:
		err = d.replaceLines(b, e, segments[0], newLines)
	}

	if err != nil {
		d.fireChanged(Change{Erased: buffer.EmptyRegion(b), Inserted: buffer.EmptyRegion(b)})
		d.logger.Debug("replace %s failed: %v", region, err)
		return buffer.Position{}, fmt.Errorf("replace %s: %w", region, err)
	}

	if d.recording {
		switch {
		case region.IsEmpty():
			d.history.Record(history.NewDeletion(inserted))
		case empty:
			d.history.Record(history.NewLinesInsertion(b, erased))
		default:
			d.history.Record(history.NewLinesReplacement(inserted, erased))
		}
	}

	d.revision++
	d.length += insertedLen - erasedLen
	d.fireChanged(Change{Erased: region.Normalized(), Inserted: inserted})
	if !d.rollbacking && modified != d.IsModified() {
		d.fireModificationSignChanged()
	}
	return inserted.End(), nil
}

// collectErased returns the length of the text in [b, e) excluding
// newlines, and the erased lines if edits are recorded.
func (d *Document) collectErased(b, e buffer.Position) (int, []buffer.Segment) {
	if b == e {
		return 0, nil
	}

	n := 0
	var erased []buffer.Segment
	for i := b.Line; i <= e.Line; i++ {
		l := d.lines.At(i)
		from, to := 0, l.Len()
		if i == b.Line {
			from = b.Offset
		}
		if i == e.Line {
			to = e.Offset
		}
		n += to - from
		if d.recording {
			erased = append(erased, buffer.Segment{
				Text:       l.Text()[from:to],
				Newline:    l.Newline(),
				Terminated: i < e.Line,
			})
		}
	}
	return n, erased
}

// replaceLines handles edits that span lines or insert line breaks.
// newLines are inserted after the last erased line, the first line is
// rewritten, and the lines in between are erased.
func (d *Document) replaceLines(b, e buffer.Position, head buffer.Segment, newLines []*buffer.Line) error {
	if len(newLines) > 0 {
		if err := d.lines.Insert(e.Line+1, newLines...); err != nil {
			return err
		}
	}

	prefix := d.lines.At(b.Line).Text()[:b.Offset]
	if len(newLines) > 0 {
		if err := d.lines.SetText(b.Line, prefix+head.Text); err != nil {
			return err
		}
		if err := d.lines.SetNewline(b.Line, head.Newline); err != nil {
			return err
		}
	} else {
		last := d.lines.At(e.Line)
		if err := d.lines.SetText(b.Line, prefix+head.Text+last.Text()[e.Offset:]); err != nil {
			return err
		}
		if err := d.lines.SetNewline(b.Line, last.Newline()); err != nil {
			return err
		}
	}

	if e.Line > b.Line {
		return d.lines.Erase(b.Line+1, e.Line+1)
	}
	return nil
}

// Insert inserts text at pos and returns the end of the inserted text.
func (d *Document) Insert(pos buffer.Position, text string) (buffer.Position, error) {
	return d.Replace(buffer.EmptyRegion(pos), text)
}

// Erase erases the text in region.
func (d *Document) Erase(region buffer.Region) error {
	_, err := d.Replace(region, "")
	return err
}
