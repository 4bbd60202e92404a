package parser

import (
	"strings"
	"testing"
)

func TestMarkdownExtractor_HeadingsBecomeLines(t *testing.T) {
	input := "# A Markdown Paper\n\nIntro text before sections.\n\n## Abstract\n\nThe abstract body.\n\n## Conclusion\n\nThe end.\n"
	path := writeTemp(t, "paper.md", input)

	e := &MarkdownExtractor{}
	pages, err := e.ExtractPages(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	lines := strings.Split(pages[0], "\n")
	want := []string{
		"A Markdown Paper",
		"Intro text before sections.",
		"Abstract",
		"The abstract body.",
		"Conclusion",
		"The end.",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), pages[0])
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d: expected %q, got %q", i, w, lines[i])
		}
	}
}

func TestMarkdownExtractor_WrappedParagraph(t *testing.T) {
	input := "A paragraph that wraps\nacross two source lines.\n"
	path := writeTemp(t, "wrapped.md", input)

	e := &MarkdownExtractor{}
	pages, err := e.ExtractPages(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, phrase := range []string{"A paragraph that wraps", "across two source lines."} {
		if strings.Count(pages[0], phrase) != 1 {
			t.Errorf("expected %q exactly once, got %q", phrase, pages[0])
		}
	}
}

func TestMarkdownExtractor_EmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.md", "")

	e := &MarkdownExtractor{}
	pages, err := e.ExtractPages(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || pages[0] != "" {
		t.Errorf("expected one empty page, got %q", pages)
	}
}
