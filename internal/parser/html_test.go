package parser

import (
	"strings"
	"testing"
)

func TestHTMLExtractor_BlocksBecomeLines(t *testing.T) {
	input := `<html><head><title>ignored</title><style>p{color:red}</style></head>
<body>
<h1>An HTML Paper</h1>
<p>Some introduction.</p>
<h2>Abstract</h2>
<p>The abstract body.</p>
<script>alert("skip me")</script>
</body></html>`
	path := writeTemp(t, "paper.html", input)

	e := &HTMLExtractor{}
	pages, err := e.ExtractPages(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}

	got := pages[0]
	for _, want := range []string{"An HTML Paper", "Some introduction.", "Abstract", "The abstract body."} {
		if !strings.Contains(got, want) {
			t.Errorf("expected page to contain %q, got %q", want, got)
		}
	}
	if strings.Contains(got, "alert") || strings.Contains(got, "color:red") {
		t.Errorf("script/style content leaked into page: %q", got)
	}
	// Headings and paragraphs each sit on their own line for the segmenter.
	lines := strings.Split(got, "\n")
	if lines[0] != "An HTML Paper" {
		t.Errorf("expected heading on first line, got %q", lines[0])
	}
}
