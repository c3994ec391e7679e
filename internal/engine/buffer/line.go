package buffer

// Line is one line of a document.
// The text does not include the terminating newline.
type Line struct {
	text     string
	newline  Newline
	revision int
}

// NewLine creates a line created at the given revision.
func NewLine(text string, nl Newline, revision int) *Line {
	return &Line{text: text, newline: nl, revision: revision}
}

// Text returns the line's text without its newline.
func (l *Line) Text() string {
	return l.text
}

// Len returns the length of the line's text in bytes.
func (l *Line) Len() int {
	return len(l.text)
}

// Newline returns the kind of newline that terminates the line.
// For the last line of a document this is the newline that would be
// used if text were appended after it.
func (l *Line) Newline() Newline {
	return l.newline
}

// Revision returns the revision at which the line was created.
func (l *Line) Revision() int {
	return l.revision
}
