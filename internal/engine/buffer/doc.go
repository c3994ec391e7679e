// Package buffer holds the line-oriented storage of a document.
//
// Text is kept as an ordered sequence of Line records in a LineStore,
// which is a gap buffer of lines. Each Line carries its text without the
// terminating newline, the kind of newline that ends it, and the
// revision at which it was created.
//
// # Coordinates
//
// A Position is a (line, offset) pair where Offset is a byte offset into
// the line's text. A Region is an unordered pair of positions; Beginning
// and End return them in document order.
//
//	r := buffer.NewRegion(buffer.Pos(1, 4), buffer.Pos(0, 2))
//	r.Beginning() // (0:2)
//	r.End()       // (1:4)
//
// # Newlines
//
// Newline enumerates the line terminators a document recognizes: LF, CR,
// CRLF, NEL (U+0085), LS (U+2028) and PS (U+2029). SplitLines and
// FindNewline are used when text containing line breaks is inserted.
//
// The types in this package are not safe for concurrent use. The
// document package owns a LineStore and serializes access to it.
package buffer
