package report

import "fmt"

// Diagnostic is a single recorded error or warning produced while checking a
// package.  Diagnostics are plain text: they carry a resolved position and a
// message but no machine-readable error code.
type Diagnostic struct {
	// The representative path of the file the diagnostic refers to.
	ReprPath string

	// The span of the offending source text.  May be nil for diagnostics that
	// are not tied to a position (eg. configuration problems).
	Span *TextSpan

	// The diagnostic message.
	Message string
}

func (d *Diagnostic) Error() string {
	if d.Span == nil {
		return fmt.Sprintf("%s: %s", d.ReprPath, d.Message)
	}

	return fmt.Sprintf("%s:%s: %s", d.ReprPath, d.Span, d.Message)
}

// -----------------------------------------------------------------------------

// ErrorList is an ordered, caller-owned list of diagnostics.  The checker
// appends to two of these (one for hard errors, one for soft errors) and never
// raises diagnostics as control flow: the caller inspects the lists after
// checking finishes, whether or not it succeeded.
type ErrorList struct {
	diags []*Diagnostic
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends a diagnostic to the list.  Diagnostics are kept in detection
// order and are not deduplicated.
func (el *ErrorList) Add(reprPath string, span *TextSpan, msg string, args ...interface{}) {
	el.diags = append(el.diags, &Diagnostic{
		ReprPath: reprPath,
		Span:     span,
		Message:  fmt.Sprintf(msg, args...),
	})
}

// Len returns the number of recorded diagnostics.
func (el *ErrorList) Len() int {
	return len(el.diags)
}

// IsEmpty returns whether no diagnostics have been recorded.
func (el *ErrorList) IsEmpty() bool {
	return len(el.diags) == 0
}

// Diagnostics returns the recorded diagnostics in detection order.
func (el *ErrorList) Diagnostics() []*Diagnostic {
	return el.diags
}

// ErrOrNil returns the first recorded diagnostic as an error, or nil if the
// list is empty.
func (el *ErrorList) ErrOrNil() error {
	if len(el.diags) == 0 {
		return nil
	}

	return el.diags[0]
}
