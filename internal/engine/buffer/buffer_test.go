package buffer

import (
	"errors"
	"testing"
)

func TestPositionCompare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Pos(0, 0), Pos(0, 0), 0},
		{Pos(0, 1), Pos(0, 2), -1},
		{Pos(1, 0), Pos(0, 9), 1},
		{Pos(2, 3), Pos(2, 1), 1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
	if !Pos(0, 1).Before(Pos(1, 0)) || Pos(0, 1).After(Pos(1, 0)) {
		t.Error("Before/After disagree with Compare")
	}
}

func TestRegion(t *testing.T) {
	r := NewRegion(Pos(2, 1), Pos(0, 4))

	if r.Beginning() != Pos(0, 4) || r.End() != Pos(2, 1) {
		t.Errorf("Beginning/End = %s/%s", r.Beginning(), r.End())
	}
	if r.Normalized() != NewRegion(Pos(0, 4), Pos(2, 1)) {
		t.Errorf("Normalized() = %s", r.Normalized())
	}
	if r.IsEmpty() || r.IsSingleLine() {
		t.Error("region should be non-empty and multi-line")
	}
	if r.Lines() != 3 {
		t.Errorf("Lines() = %d, want 3", r.Lines())
	}
	if !EmptyRegion(Pos(1, 1)).IsEmpty() {
		t.Error("EmptyRegion should be empty")
	}

	if !r.Contains(Pos(1, 100)) || !r.Contains(Pos(0, 4)) || r.Contains(Pos(0, 3)) {
		t.Error("Contains is wrong")
	}
	if !r.Encompasses(NewRegion(Pos(1, 0), Pos(0, 5))) {
		t.Error("inner region should be encompassed")
	}
	if r.Encompasses(NewRegion(Pos(1, 0), Pos(2, 2))) {
		t.Error("overlapping region should not be encompassed")
	}
}

func TestFindNewline(t *testing.T) {
	tests := []struct {
		text string
		idx  int
		nl   Newline
	}{
		{"abc", -1, NewlineLF},
		{"a\nb", 1, NewlineLF},
		{"a\rb", 1, NewlineCR},
		{"a\r\nb", 1, NewlineCRLF},
		{"ab\r", 2, NewlineCR},
		{"a\u0085b", 1, NewlineNEL},
		{"a\u2028b", 1, NewlineLS},
		{"a\u2029b", 1, NewlinePS},
		{"日本\n", 6, NewlineLF},
	}

	for _, tt := range tests {
		idx, nl := FindNewline(tt.text, 0)
		if idx != tt.idx || (idx >= 0 && nl != tt.nl) {
			t.Errorf("FindNewline(%q) = %d, %s; want %d, %s", tt.text, idx, nl, tt.idx, tt.nl)
		}
	}
}

func TestSplitLines(t *testing.T) {
	segs := SplitLines("ab\r\ncd\nef")
	want := []Segment{
		{Text: "ab", Newline: NewlineCRLF, Terminated: true},
		{Text: "cd", Newline: NewlineLF, Terminated: true},
		{Text: "ef"},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d", len(segs), len(want))
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}

	if segs := SplitLines(""); len(segs) != 1 || segs[0].Text != "" {
		t.Errorf("SplitLines(\"\") = %+v", segs)
	}
	if segs := SplitLines("x\n"); len(segs) != 2 || segs[1].Text != "" {
		t.Errorf("SplitLines(\"x\\n\") = %+v", segs)
	}
}

func TestAppendSegments(t *testing.T) {
	a := []Segment{{Text: "q", Newline: NewlineCR, Terminated: true}, {Text: ""}}
	b := []Segment{{Text: "", Newline: NewlineLF, Terminated: true}, {Text: "w"}}

	got := AppendSegments(a, b)
	want := []Segment{
		{Text: "q", Newline: NewlineCR, Terminated: true},
		{Text: "", Newline: NewlineLF, Terminated: true},
		{Text: "w"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d segments, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if s := JoinSegments(got); s != "q\r\nw" {
		t.Errorf("JoinSegments = %q", s)
	}
	// the flat text reads back as one CRLF break
	if n := len(SplitLines(JoinSegments(got))); n != 2 {
		t.Errorf("SplitLines of joined text gave %d segments, want 2", n)
	}

	joined := AppendSegments([]Segment{{Text: "ab"}}, []Segment{{Text: "cd"}})
	if len(joined) != 1 || joined[0].Text != "abcd" {
		t.Errorf("AppendSegments of single segments = %+v", joined)
	}
	if got := AppendSegments(nil, b); len(got) != 2 {
		t.Errorf("AppendSegments(nil, b) = %+v", got)
	}
}

func TestCountAndDetectNewlines(t *testing.T) {
	if n := CountNewlines("a\r\nb\nc\rd"); n != 3 {
		t.Errorf("CountNewlines = %d, want 3", n)
	}
	if nl := DetectNewline("a\r\nb\r\nc\n"); nl != NewlineCRLF {
		t.Errorf("DetectNewline = %s, want CRLF", nl)
	}
	if nl := DetectNewline("plain"); nl != DefaultNewline {
		t.Errorf("DetectNewline(plain) = %s", nl)
	}
}

func TestParseNewline(t *testing.T) {
	for _, nl := range []Newline{NewlineLF, NewlineCR, NewlineCRLF, NewlineNEL, NewlineLS, NewlinePS} {
		got, err := ParseNewline(nl.String())
		if err != nil || got != nl {
			t.Errorf("ParseNewline(%q) = %s, %v", nl.String(), got, err)
		}
	}
	if _, err := ParseNewline("bogus"); err == nil {
		t.Error("ParseNewline(bogus) should fail")
	}
}

func newStore(t *testing.T, text string) *LineStore {
	t.Helper()
	s, err := NewLineStore(WithCapacity(2))
	if err != nil {
		t.Fatalf("NewLineStore: %v", err)
	}
	if err := s.Load(text, NewlineLF, 0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestLineStoreNew(t *testing.T) {
	s, err := NewLineStore(WithNewline(NewlineCRLF))
	if err != nil {
		t.Fatalf("NewLineStore: %v", err)
	}
	if s.Count() != 1 || s.Text(0) != "" {
		t.Errorf("new store has %d lines, first %q", s.Count(), s.Text(0))
	}
	if s.At(0).Newline() != NewlineCRLF {
		t.Errorf("initial newline = %s", s.At(0).Newline())
	}
}

func TestLineStoreLoadAndString(t *testing.T) {
	s := newStore(t, "one\r\ntwo\nthree")
	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	if s.String() != "one\r\ntwo\nthree" {
		t.Errorf("String() = %q", s.String())
	}
	if s.Length() != 11 {
		t.Errorf("Length() = %d, want 11", s.Length())
	}
}

func TestLineStoreEdit(t *testing.T) {
	s := newStore(t, "a\nb\nc")

	if err := s.Insert(1, NewLine("x", NewlineLF, 1), NewLine("y", NewlineLF, 1)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if s.String() != "a\nx\ny\nb\nc" {
		t.Errorf("after insert: %q", s.String())
	}
	if s.At(1).Revision() != 1 || s.At(0).Revision() != 0 {
		t.Error("line revisions are wrong")
	}

	if err := s.Erase(0, 2); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if err := s.SetText(0, "Y"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if err := s.SetNewline(0, NewlineCR); err != nil {
		t.Fatalf("SetNewline: %v", err)
	}
	if s.String() != "Y\rb\nc" {
		t.Errorf("after erase/set: %q", s.String())
	}
}

func TestLineStoreErrors(t *testing.T) {
	s := newStore(t, "a\nb")

	if _, err := s.Line(2); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("Line(2) error = %v", err)
	}
	if err := s.SetText(-1, "x"); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("SetText(-1) error = %v", err)
	}
	if err := s.SetNewline(0, Newline(99)); !errors.Is(err, ErrInvalidNewline) {
		t.Errorf("SetNewline(99) error = %v", err)
	}
	if err := s.Erase(0, 2); !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("erasing every line should fail, got %v", err)
	}
	if s.Count() != 2 {
		t.Errorf("failed erase changed count to %d", s.Count())
	}
}

func TestLineStoreReset(t *testing.T) {
	s := newStore(t, "a\nb\nc")
	s.Reset(NewlineCR, 5)
	if s.Count() != 1 || s.Text(0) != "" || s.At(0).Revision() != 5 {
		t.Errorf("after Reset: %d lines, %q", s.Count(), s.Text(0))
	}
}
