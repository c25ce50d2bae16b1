package token

import "fmt"

// Pos is a location in a source document. Line and Col are zero based;
// Col counts bytes from the start of the line.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d (offset %d)", p.Line+1, p.Col+1, p.Offset)
}

// Advance returns p moved past d. Newlines reset the column and advance
// the line counter.
func (p Pos) Advance(d []byte) Pos {
	for _, c := range d {
		p.Offset++
		if c == '\n' {
			p.Line++
			p.Col = 0
			continue
		}
		p.Col++
	}
	return p
}

// Span is a half open [Start, End) region of the source.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%d", s.Start, s.End.Offset)
}

// Cover returns the smallest span containing both s and o.
func (s Span) Cover(o Span) Span {
	res := s
	if o.Start.Offset < res.Start.Offset {
		res.Start = o.Start
	}
	if o.End.Offset > res.End.Offset {
		res.End = o.End
	}
	return res
}
