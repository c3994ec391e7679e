package document

import (
	"fmt"
	"strings"

	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/engine/history"
	"github.com/dshills/textkernel/internal/logging"
)

// unmodifiedNever is a last unmodified revision no document reaches.
const unmodifiedNever = -1

// Document is an editable text document.
type Document struct {
	lines   *buffer.LineStore
	newline buffer.Newline

	// length is the total length of all lines, excluding newlines.
	length int

	revision       int
	lastUnmodified int

	readOnly    bool
	recording   bool
	changing    bool
	rollbacking bool

	// Narrowing. The end of the accessible region follows edits.
	narrowed        bool
	accessibleBegin buffer.Position
	accessibleEnd   *Point

	history *history.Manager
	points  []*Point

	prenotified       listeners[Listener]
	listeners         listeners[Listener]
	rollbackListeners listeners[RollbackListener]
	stateListeners    listeners[StateListener]

	logger *logging.Logger
}

// New creates an empty document holding one empty line.
func New(opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	lines, err := buffer.NewLineStore(
		buffer.WithCapacity(cfg.lineCapacity),
		buffer.WithNewline(cfg.newline),
	)
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}

	d := &Document{
		lines:     lines,
		newline:   cfg.newline,
		readOnly:  cfg.readOnly,
		recording: cfg.recording,
		logger:    cfg.logger.WithComponent("document"),
	}
	d.history = history.NewManager(d,
		history.WithMaxEntries(cfg.maxUndoEntries),
		history.WithLogger(cfg.logger),
	)
	return d, nil
}

// NewFromString creates a document holding text.
// The content is not recorded for undo and the document is unmodified.
func NewFromString(text string, opts ...Option) (*Document, error) {
	d, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := d.lines.Load(text, d.newline, 0); err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}
	d.length = d.lines.Length()
	return d, nil
}

// ============================================================================
// Content
// ============================================================================

// NumberOfLines returns the number of lines. A document always has at
// least one line.
func (d *Document) NumberOfLines() int {
	return d.lines.Count()
}

// Line returns the text of line i without its newline.
func (d *Document) Line(i int) (string, error) {
	l, err := d.lines.Line(i)
	if err != nil {
		return "", err
	}
	return l.Text(), nil
}

// LineLength returns the length of line i without its newline.
func (d *Document) LineLength(i int) (int, error) {
	l, err := d.lines.Line(i)
	if err != nil {
		return 0, err
	}
	return l.Len(), nil
}

// LineNewline returns the newline terminating line i.
func (d *Document) LineNewline(i int) (buffer.Newline, error) {
	l, err := d.lines.Line(i)
	if err != nil {
		return buffer.DefaultNewline, err
	}
	return l.Newline(), nil
}

// LineRevision returns the revision at which line i was created.
func (d *Document) LineRevision(i int) (int, error) {
	l, err := d.lines.Line(i)
	if err != nil {
		return 0, err
	}
	return l.Revision(), nil
}

// Length returns the number of bytes of text, excluding newlines.
func (d *Document) Length() int {
	return d.length
}

// TextLength returns the number of bytes of text including the newline
// of every line but the last.
func (d *Document) TextLength() int {
	n := d.length
	last := d.lines.Count() - 1
	for i, l := range d.lines.All() {
		if i < last {
			n += len(l.Newline().Sequence())
		}
	}
	return n
}

// LineOffset returns the offset of the start of line i in Text.
func (d *Document) LineOffset(i int) (int, error) {
	if i < 0 || i >= d.lines.Count() {
		return 0, fmt.Errorf("line offset %d: %w", i, buffer.ErrLineOutOfRange)
	}
	offset := 0
	for j, l := range d.lines.All() {
		if j == i {
			break
		}
		offset += l.Len() + len(l.Newline().Sequence())
	}
	return offset, nil
}

// Text returns the whole content, joining lines with their own newlines.
func (d *Document) Text() string {
	return d.lines.String()
}

// TextIn returns the text in region.
func (d *Document) TextIn(region buffer.Region) (string, error) {
	if err := d.checkRegion(region); err != nil {
		return "", err
	}
	return d.textIn(region.Beginning(), region.End()), nil
}

func (d *Document) textIn(b, e buffer.Position) string {
	if b.Line == e.Line {
		return d.lines.At(b.Line).Text()[b.Offset:e.Offset]
	}
	var sb strings.Builder
	for i := b.Line; i <= e.Line; i++ {
		l := d.lines.At(i)
		switch i {
		case b.Line:
			sb.WriteString(l.Text()[b.Offset:])
		case e.Line:
			sb.WriteString(l.Text()[:e.Offset])
			continue
		default:
			sb.WriteString(l.Text())
		}
		sb.WriteString(l.Newline().Sequence())
	}
	return sb.String()
}

// Region returns the region of the whole document.
func (d *Document) Region() buffer.Region {
	last := d.lines.Count() - 1
	return buffer.NewRegion(buffer.Position{}, buffer.Pos(last, d.lines.At(last).Len()))
}

// Newline returns the newline used for new last lines.
func (d *Document) Newline() buffer.Newline {
	return d.newline
}

// Revision returns the revision number. It increases by one with every
// edit and decreases with undo.
func (d *Document) Revision() int {
	return d.revision
}

// ============================================================================
// State
// ============================================================================

// IsReadOnly returns true if the document cannot be changed.
func (d *Document) IsReadOnly() bool {
	return d.readOnly
}

// SetReadOnly makes the document read-only or writable.
func (d *Document) SetReadOnly(readOnly bool) {
	if readOnly == d.readOnly {
		return
	}
	d.readOnly = readOnly
	d.fireReadOnlySignChanged()
}

// IsModified returns true if the revision differs from the one last
// marked unmodified.
func (d *Document) IsModified() bool {
	return d.revision != d.lastUnmodified
}

// MarkUnmodified marks the current revision as unmodified, for example
// after the document was saved.
func (d *Document) MarkUnmodified() {
	if d.IsModified() {
		d.lastUnmodified = d.revision
		d.fireModificationSignChanged()
	}
}

// SetModified marks the document modified until MarkUnmodified is called.
func (d *Document) SetModified() {
	if !d.IsModified() {
		d.lastUnmodified = unmodifiedNever
		d.fireModificationSignChanged()
	}
}

// IsRecordingChanges returns true if edits are recorded for undo.
func (d *Document) IsRecordingChanges() bool {
	return d.recording
}

// RecordChanges starts or stops recording edits for undo.
// Stopping discards the undo history.
func (d *Document) RecordChanges(record bool) {
	d.recording = record
	if !record {
		d.ClearUndoBuffer()
	}
}

// ClearUndoBuffer discards the undo and redo history.
func (d *Document) ClearUndoBuffer() {
	d.history.Clear()
}

// ResetContent discards the content and history, leaving a single empty
// line at revision 0. The document is widened and marked unmodified.
func (d *Document) ResetContent() error {
	if d.changing {
		return fmt.Errorf("reset content: %w", ErrIllegalState)
	}
	d.changing = true
	defer func() { d.changing = false }()

	modified := d.IsModified()
	erased := d.Region()
	d.widen()

	d.fireAboutToBeChanged()
	d.lines.Reset(d.newline, 0)
	d.length = 0
	d.revision = 0
	d.lastUnmodified = 0
	d.history.Clear()
	for _, p := range d.points {
		p.reset()
	}
	d.fireChanged(Change{Erased: erased, Inserted: buffer.EmptyRegion(buffer.Position{})})

	if modified {
		d.fireModificationSignChanged()
	}
	return nil
}

// ============================================================================
// Narrowing
// ============================================================================

// IsNarrowed returns true if edits are restricted to a region.
func (d *Document) IsNarrowed() bool {
	return d.narrowed
}

// AccessibleRegion returns the region edits are restricted to, which is
// the whole document unless it is narrowed.
func (d *Document) AccessibleRegion() buffer.Region {
	if !d.narrowed {
		return d.Region()
	}
	return buffer.NewRegion(d.accessibleBegin, d.accessibleEnd.Position())
}

// NarrowToRegion restricts edits to region.
func (d *Document) NarrowToRegion(region buffer.Region) error {
	if err := d.checkRegion(region); err != nil {
		return fmt.Errorf("narrow: %w", err)
	}
	region = region.Normalized()
	if d.narrowed && d.AccessibleRegion() == region {
		return nil
	}

	end, err := d.NewPoint(region.End(), GravityForward)
	if err != nil {
		return fmt.Errorf("narrow: %w", err)
	}
	if d.accessibleEnd != nil {
		d.accessibleEnd.Close()
	}
	d.narrowed = true
	d.accessibleBegin = region.Beginning()
	d.accessibleEnd = end
	d.fireAccessibleRegionChanged()
	return nil
}

// Widen removes the restriction set by NarrowToRegion.
func (d *Document) Widen() {
	if d.widen() {
		d.fireAccessibleRegionChanged()
	}
}

func (d *Document) widen() bool {
	if !d.narrowed {
		return false
	}
	d.narrowed = false
	d.accessibleEnd.Close()
	d.accessibleEnd = nil
	return true
}

// ============================================================================
// Validation
// ============================================================================

func (d *Document) checkPosition(p buffer.Position) error {
	if p.Line < 0 || p.Line >= d.lines.Count() || p.Offset < 0 || p.Offset > d.lines.At(p.Line).Len() {
		return &PositionError{Position: p, Err: ErrBadPosition}
	}
	return nil
}

func (d *Document) checkRegion(r buffer.Region) error {
	if d.checkPosition(r.First) != nil || d.checkPosition(r.Second) != nil {
		return &RegionError{Region: r, Err: ErrBadRegion}
	}
	return nil
}
