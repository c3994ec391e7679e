package buffer

import (
	"fmt"
	"slices"
	"strings"
)

// Newline identifies the sequence that terminates a line.
type Newline uint8

const (
	NewlineLF   Newline = iota // Unix: \n
	NewlineCR                  // Old Mac: \r
	NewlineCRLF                // Windows: \r\n
	NewlineNEL                 // Next Line: U+0085
	NewlineLS                  // Line Separator: U+2028
	NewlinePS                  // Paragraph Separator: U+2029
)

// DefaultNewline is the newline used for documents that do not specify one.
const DefaultNewline = NewlineLF

// String returns the name of the newline kind.
func (n Newline) String() string {
	switch n {
	case NewlineLF:
		return "LF"
	case NewlineCR:
		return "CR"
	case NewlineCRLF:
		return "CRLF"
	case NewlineNEL:
		return "NEL"
	case NewlineLS:
		return "LS"
	case NewlinePS:
		return "PS"
	default:
		return "Unknown"
	}
}

// Sequence returns the text of the newline.
func (n Newline) Sequence() string {
	switch n {
	case NewlineLF:
		return "\n"
	case NewlineCR:
		return "\r"
	case NewlineCRLF:
		return "\r\n"
	case NewlineNEL:
		return "\u0085"
	case NewlineLS:
		return "\u2028"
	case NewlinePS:
		return "\u2029"
	default:
		return "\n"
	}
}

// IsValid returns true if n is one of the known newline kinds.
func (n Newline) IsValid() bool {
	return n <= NewlinePS
}

// ParseNewline converts a name such as "lf" or "CRLF" to a Newline.
func ParseNewline(s string) (Newline, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LF":
		return NewlineLF, nil
	case "CR":
		return NewlineCR, nil
	case "CRLF":
		return NewlineCRLF, nil
	case "NEL":
		return NewlineNEL, nil
	case "LS":
		return NewlineLS, nil
	case "PS":
		return NewlinePS, nil
	default:
		return NewlineLF, fmt.Errorf("%w: %q", ErrInvalidNewline, s)
	}
}

// FindNewline returns the byte index of the first newline in s at or
// after from, and its kind. The index is -1 if there is none.
func FindNewline(s string, from int) (int, Newline) {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return i, NewlineLF
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return i, NewlineCRLF
			}
			return i, NewlineCR
		case 0xC2:
			if i+1 < len(s) && s[i+1] == 0x85 {
				return i, NewlineNEL
			}
		case 0xE2:
			if i+2 < len(s) && s[i+1] == 0x80 {
				switch s[i+2] {
				case 0xA8:
					return i, NewlineLS
				case 0xA9:
					return i, NewlinePS
				}
			}
		}
	}
	return -1, NewlineLF
}

// ContainsNewline returns true if s contains any newline.
func ContainsNewline(s string) bool {
	i, _ := FindNewline(s, 0)
	return i >= 0
}

// Segment is one line of a text split at its newlines.
type Segment struct {
	Text       string
	Newline    Newline
	Terminated bool // false for the last segment
}

// SplitLines splits s at every newline. The result always has at least
// one segment; only the last one is unterminated.
func SplitLines(s string) []Segment {
	var segments []Segment
	start := 0
	for {
		i, nl := FindNewline(s, start)
		if i < 0 {
			break
		}
		segments = append(segments, Segment{Text: s[start:i], Newline: nl, Terminated: true})
		start = i + len(nl.Sequence())
	}
	return append(segments, Segment{Text: s[start:]})
}

// JoinSegments concatenates segments, each followed by its newline if
// it is terminated.
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
		if s.Terminated {
			sb.WriteString(s.Newline.Sequence())
		}
	}
	return sb.String()
}

// AppendSegments returns the segments of a followed by those of b. The
// last segment of a continues with the first segment of b. Unlike
// joining the flat texts, a trailing CR in a and a leading LF in b stay
// two line breaks.
func AppendSegments(a, b []Segment) []Segment {
	if len(a) == 0 {
		return slices.Clone(b)
	}
	if len(b) == 0 {
		return slices.Clone(a)
	}
	out := make([]Segment, 0, len(a)+len(b)-1)
	out = append(out, a[:len(a)-1]...)
	joint := b[0]
	joint.Text = a[len(a)-1].Text + joint.Text
	out = append(out, joint)
	return append(out, b[1:]...)
}

// CountNewlines returns the number of newlines in s.
func CountNewlines(s string) int {
	n := 0
	for i := 0; ; {
		j, nl := FindNewline(s, i)
		if j < 0 {
			return n
		}
		n++
		i = j + len(nl.Sequence())
	}
}

// DetectNewline returns the most common newline in text.
// Returns DefaultNewline if text has no newline.
func DetectNewline(text string) Newline {
	var counts [NewlinePS + 1]int
	for i := 0; ; {
		j, nl := FindNewline(text, i)
		if j < 0 {
			break
		}
		counts[nl]++
		i = j + len(nl.Sequence())
	}

	best := DefaultNewline
	for nl, c := range counts {
		if c > counts[best] {
			best = Newline(nl)
		}
	}
	return best
}
