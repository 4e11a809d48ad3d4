package mdtest

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractTestCases(t *testing.T) {
	cases, err := ExtractTestCases("# Corpus\n\n" +
		"## Test: first\n\n" +
		"```goscript\npackage main\n```\n\n" +
		"```errors\nmain.gs:1:1: boom\n```\n\n" +
		"## Test: second\n\n" +
		"```goscript\n// file: a.gs\npackage main\n```\n\n" +
		"```goscript\n// file: b.gs\npackage main\n```\n\n" +
		"```init-order\nx\ny\n```\n")
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	first := cases[0]
	be.Equal(t, first.Name, "first")
	be.Equal(t, len(first.Files), 1)
	be.Equal(t, first.Files[0].Name, "file1.gs")
	be.Equal(t, first.Files[0].Content, "package main\n")
	be.Equal(t, first.Errors, []string{"main.gs:1:1: boom"})
	be.True(t, first.SoftErrors == nil)
	be.True(t, first.InitOrder == nil)

	second := cases[1]
	be.Equal(t, second.Name, "second")
	be.Equal(t, len(second.Files), 2)
	be.Equal(t, second.Files[0].Name, "a.gs")
	be.Equal(t, second.Files[1].Name, "b.gs")
	be.Equal(t, second.InitOrder, []string{"x", "y"})
}

func TestEmptyExpectationFence(t *testing.T) {
	cases, err := ExtractTestCases("## Test: quiet\n\n" +
		"```goscript\npackage main\n```\n\n" +
		"```errors\n```\n")
	be.Err(t, err, nil)

	// An empty fence still claims that no diagnostics are expected.
	be.True(t, cases[0].Errors != nil)
	be.Equal(t, len(cases[0].Errors), 0)
}

func TestHeadingsWithoutTestPrefixAreIgnored(t *testing.T) {
	cases, err := ExtractTestCases("# Title\n\nSome prose.\n\n" +
		"## Test: only\n\nProse between fences.\n\n" +
		"```goscript\npackage main\n```\n\n" +
		"### Notes\n\n" +
		"```errors\n```\n")
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)
	be.Equal(t, cases[0].Name, "only")
}

func TestExtractErrors(t *testing.T) {
	_, err := ExtractTestCases("```goscript\npackage main\n```\n")
	be.True(t, err != nil)

	_, err = ExtractTestCases("## Test: broken\n\n```errors\n```\n")
	be.True(t, err != nil)

	_, err = ExtractTestCases("## Test: dup\n\n" +
		"```goscript\npackage main\n```\n\n" +
		"```errors\n```\n\n```errors\n```\n")
	be.True(t, err != nil)

	_, err = ExtractTestCases("## Test: unknown\n\n" +
		"```goscript\npackage main\n```\n\n```mystery\n```\n")
	be.True(t, err != nil)
}
