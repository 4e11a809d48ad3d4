package mdtest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown test corpora drive the checker tests.  A corpus file holds a
// sequence of cases, each introduced by a heading of the form `Test: name`
// followed by fenced code blocks:
//
//	goscript     a source file fed to the checker; the fence may start with
//	             a `// file: name.gs` line to name the file, and a case may
//	             hold several of them
//	errors       the expected hard diagnostics, one `path:line:col: msg` per
//	             line; absent or empty means no errors are expected
//	soft-errors  the expected soft diagnostics, same format
//	init-order   the expected initialization order, one step per line, e.g.
//	             `x = <expr>` or `x, y = <expr>`

// FenceType represents the language tag of a code fence in a corpus file.
type FenceType string

const (
	FenceTypeSource     FenceType = "goscript"
	FenceTypeErrors     FenceType = "errors"
	FenceTypeSoftErrors FenceType = "soft-errors"
	FenceTypeInitOrder  FenceType = "init-order"
)

// SourceFile is one named source file of a test case.
type SourceFile struct {
	Name    string
	Content string
}

// TestCase is a single checker test extracted from a corpus file.
type TestCase struct {
	// Name is the test name from the heading, after "Test: ".
	Name string

	// Files are the source files of the case, in corpus order.
	Files []SourceFile

	// Errors and SoftErrors are the expected diagnostics, one per line.
	Errors     []string
	SoftErrors []string

	// InitOrder is the expected initialization order, one step per line.
	// A nil slice means the case makes no claim about initialization order.
	InitOrder []string
}

// ExtractTestCases parses a corpus file and extracts its test cases.
func ExtractTestCases(corpus string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(corpus)

	doc := md.Parser().Parse(text.NewReader(source))

	var cases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := headingContent(n, source)
			if !strings.HasPrefix(headingText, "Test: ") {
				return ast.WalkContinue, nil
			}

			if current != nil {
				if err := validateTestCase(current); err != nil {
					return ast.WalkStop, err
				}

				cases = append(cases, *current)
			}

			current = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			if language == "" {
				return ast.WalkContinue, nil
			}

			if current == nil {
				return ast.WalkStop, fmt.Errorf("%s fence found outside of a test case", language)
			}

			content := fenceContent(n, source)
			switch FenceType(language) {
			case FenceTypeSource:
				name, body := splitFileName(content, fmt.Sprintf("file%d.gs", len(current.Files)+1))
				current.Files = append(current.Files, SourceFile{Name: name, Content: body})
			case FenceTypeErrors:
				if current.Errors != nil {
					return ast.WalkStop, fmt.Errorf("multiple errors fences in test '%s'", current.Name)
				}

				current.Errors = splitLines(content)
			case FenceTypeSoftErrors:
				if current.SoftErrors != nil {
					return ast.WalkStop, fmt.Errorf("multiple soft-errors fences in test '%s'", current.Name)
				}

				current.SoftErrors = splitLines(content)
			case FenceTypeInitOrder:
				if current.InitOrder != nil {
					return ast.WalkStop, fmt.Errorf("multiple init-order fences in test '%s'", current.Name)
				}

				current.InitOrder = splitLines(content)
			default:
				return ast.WalkStop, fmt.Errorf("unknown fence language '%s' in test '%s'", language, current.Name)
			}
		}

		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, err
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}

		cases = append(cases, *current)
	}

	return cases, nil
}

// validateTestCase ensures a test case holds at least one source file.
func validateTestCase(tc *TestCase) error {
	if len(tc.Files) == 0 {
		return fmt.Errorf("test '%s' has no source fence", tc.Name)
	}

	return nil
}

// headingContent extracts the plain text of a heading node.
func headingContent(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}

		return ast.WalkContinue, nil
	})

	return buf.String()
}

// fenceContent extracts the body of a fenced code block.
func fenceContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer

	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}

	return buf.String()
}

// splitFileName pulls an optional `// file: name` directive off the first line
// of a source fence.
func splitFileName(content, defaultName string) (string, string) {
	firstLine, rest, found := strings.Cut(content, "\n")
	if found && strings.HasPrefix(firstLine, "// file:") {
		return strings.TrimSpace(strings.TrimPrefix(firstLine, "// file:")), rest
	}

	return defaultName, content
}

// splitLines splits an expectation fence into its non-empty lines.  The result
// is non-nil even when the fence is empty, so an empty fence still claims that
// no diagnostics are expected.
func splitLines(content string) []string {
	lines := []string{}
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimRight(line, " \t\r"); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	return lines
}
