package engine

import (
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/textkernel/internal/engine/buffer"
	"github.com/dshills/textkernel/internal/engine/document"
	"github.com/dshills/textkernel/internal/engine/history"
	"github.com/dshills/textkernel/internal/engine/tracking"
	"github.com/dshills/textkernel/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line and offset in the document.
	Position = buffer.Position

	// Region is a pair of positions.
	Region = buffer.Region

	// Newline identifies a newline sequence.
	Newline = buffer.Newline

	// Entry is a journaled change.
	Entry = tracking.Entry

	// Sequence numbers journal entries.
	Sequence = tracking.Sequence

	// UndoInfo describes one undo or redo step.
	UndoInfo = history.Info
)

// Pos returns the position at line and offset.
func Pos(line, offset int) Position {
	return buffer.Pos(line, offset)
}

// Reg returns the region between two positions.
func Reg(first, second Position) Region {
	return buffer.NewRegion(first, second)
}

// Engine is a thread-safe facade over one document. It combines the
// document, its undo history and a journal of its changes.
//
// All methods are safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	id      uuid.UUID
	doc     *document.Document
	journal *tracking.Journal
	logger  *logging.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return newEngine(s)
}

// NewFromReader creates an Engine holding the content of r. Unless
// WithNewline is given, the last line takes the most common newline of
// the content.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	s.content = string(data)
	if !s.newlineSet && buffer.ContainsNewline(s.content) {
		s.newline = buffer.DetectNewline(s.content)
	}
	return newEngine(s)
}

func newEngine(s settings) (*Engine, error) {
	id := uuid.New()
	logger := s.logger.WithField("engine", id.String()[:8])

	doc, err := document.NewFromString(s.content,
		document.WithNewline(s.newline),
		document.WithLineCapacity(s.lineCapacity),
		document.WithMaxUndoEntries(s.maxUndoEntries),
		document.WithReadOnly(s.readOnly),
		document.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	journal := tracking.NewJournal(tracking.WithMaxEntries(s.journalSize))
	if err := journal.Attach(doc); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	e := &Engine{
		id:      id,
		doc:     doc,
		journal: journal,
		logger:  logger.WithComponent("engine"),
	}
	e.logger.Debug("created with %d lines", doc.NumberOfLines())
	return e, nil
}

// ID returns the unique identifier of the engine.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Text()
}

// TextIn returns the text of a region.
func (e *Engine) TextIn(r Region) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.TextIn(r)
}

// Line returns the text of a line without its newline.
func (e *Engine) Line(i int) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Line(i)
}

// LineNewline returns the newline ending a line.
func (e *Engine) LineNewline(i int) (Newline, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.LineNewline(i)
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.NumberOfLines()
}

// Length returns the number of characters, excluding newlines.
func (e *Engine) Length() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Length()
}

// TextLength returns the number of characters, including newlines.
func (e *Engine) TextLength() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.TextLength()
}

// Revision returns the document revision.
func (e *Engine) Revision() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Revision()
}

// Region returns the region of the whole document.
func (e *Engine) Region() Region {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Region()
}

// Lines calls fn for each line with its text and newline, stopping when
// fn returns false.
func (e *Engine) Lines(fn func(i int, text string, nl Newline) bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for i := 0; i < e.doc.NumberOfLines(); i++ {
		text, _ := e.doc.Line(i)
		nl, _ := e.doc.LineNewline(i)
		if !fn(i, text, nl) {
			return
		}
	}
}

// ============================================================================
// Write Operations
// ============================================================================

// Replace replaces the text of a region and returns the end of the
// inserted text.
func (e *Engine) Replace(r Region, text string) (Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	end, err := e.doc.Replace(r, text)
	if err != nil {
		e.logger.Debug("replace %s failed: %v", r, err)
	}
	return end, err
}

// Insert inserts text at a position and returns the end of the inserted
// text.
func (e *Engine) Insert(p Position, text string) (Position, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Insert(p, text)
}

// Erase erases the text of a region.
func (e *Engine) Erase(r Region) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Erase(r)
}

// ReplaceAll replaces several regions as one undo step.
func (e *Engine) ReplaceAll(edits map[Region]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.ReplaceAll(edits)
}

// Group runs fn with the document locked and its edits grouped into one
// undo step. fn must not call methods of the engine.
func (e *Engine) Group(fn func(d *document.Document) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Group(func() error { return fn(e.doc) })
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo reverts n undo steps. It returns false if it stopped early
// because a step lies outside the accessible region.
func (e *Engine) Undo(n int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Undo(n)
}

// Redo reapplies n undone steps.
func (e *Engine) Redo(n int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Redo(n)
}

// NumberOfUndoableChanges returns the number of undo steps.
func (e *Engine) NumberOfUndoableChanges() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.NumberOfUndoableChanges()
}

// NumberOfRedoableChanges returns the number of redo steps.
func (e *Engine) NumberOfRedoableChanges() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.NumberOfRedoableChanges()
}

// UndoInfo describes the undo steps, oldest first.
func (e *Engine) UndoInfo() []UndoInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.UndoInfo()
}

// RedoInfo describes the redo steps, oldest first.
func (e *Engine) RedoInfo() []UndoInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.RedoInfo()
}

// BeginCompoundChange starts grouping edits into one undo step.
func (e *Engine) BeginCompoundChange() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.BeginCompoundChange()
}

// EndCompoundChange ends the current group of edits.
func (e *Engine) EndCompoundChange() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.EndCompoundChange()
}

// InsertUndoBoundary ends the current undo step.
func (e *Engine) InsertUndoBoundary() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.InsertUndoBoundary()
}

// ClearHistory removes all undo and redo steps.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.ClearUndoBuffer()
}

// ============================================================================
// State
// ============================================================================

// NarrowToRegion restricts edits to a region.
func (e *Engine) NarrowToRegion(r Region) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.NarrowToRegion(r)
}

// Widen removes the restriction set by NarrowToRegion.
func (e *Engine) Widen() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Widen()
}

// AccessibleRegion returns the region edits are restricted to.
func (e *Engine) AccessibleRegion() Region {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.AccessibleRegion()
}

// SetReadOnly sets whether the document may be edited.
func (e *Engine) SetReadOnly(readOnly bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.SetReadOnly(readOnly)
}

// IsReadOnly returns true if the document may not be edited.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.IsReadOnly()
}

// IsModified returns true if the document changed since it was last
// marked unmodified.
func (e *Engine) IsModified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.IsModified()
}

// MarkUnmodified marks the current revision as unmodified.
func (e *Engine) MarkUnmodified() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.MarkUnmodified()
}

// ============================================================================
// Change Journal
// ============================================================================

// Checkpoint returns the sequence number of the latest journaled change.
// Pass it to ChangesSince to get the changes made after this call.
func (e *Engine) Checkpoint() Sequence {
	return e.journal.Current()
}

// ChangesSince returns the journaled changes after seq, oldest first.
func (e *Engine) ChangesSince(seq Sequence) []Entry {
	return e.journal.ChangesSince(seq)
}

// LatestChanges returns the last n journaled changes, oldest first.
func (e *Engine) LatestChanges(n int) []Entry {
	return e.journal.Latest(n)
}

// Journal returns the change journal.
func (e *Engine) Journal() *tracking.Journal {
	return e.journal
}
