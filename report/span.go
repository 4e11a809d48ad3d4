package report

import "fmt"

// TextSpan represents a range or "span" of source text.  It is used to specify
// erroneous or otherwise significant source text in a GoScript program.  The
// starting position is the position of the first character in the span and the
// ending position is the position one past the last character.  The line and
// column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// String returns the one-indexed `line:column` rendering of the start of the
// span: the form used in diagnostic output.
func (ts *TextSpan) String() string {
	return fmt.Sprintf("%d:%d", ts.StartLine+1, ts.StartCol+1)
}

// Same returns whether two spans begin at the same source position.  It is the
// comparison used to distinguish defining occurrences of an identifier from
// uses: a definition's recorded span starts exactly at its object's
// declaration span.
func (ts *TextSpan) Same(other *TextSpan) bool {
	return ts != nil && other != nil &&
		ts.StartLine == other.StartLine && ts.StartCol == other.StartCol
}

// Before returns whether this span begins strictly before the other span in
// source order within the same file.
func (ts *TextSpan) Before(other *TextSpan) bool {
	if ts.StartLine != other.StartLine {
		return ts.StartLine < other.StartLine
	}

	return ts.StartCol < other.StartCol
}
