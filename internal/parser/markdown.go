package parser

import (
	"bytes"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings become
// their own lines followed by the block text beneath them, so the section
// segmenter sees the same shape it gets from a PDF.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) ExtractPages(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if t := string(node.Text(src)); t != "" {
				lines = append(lines, t)
			}
		default:
			if t := blockText(n, src); t != "" {
				lines = append(lines, strings.Split(t, "\n")...)
			}
		}
	}

	return []string{strings.Join(lines, "\n")}, nil
}

// blockText gets the text content of a goldmark AST node. Leaf blocks carry
// their raw lines; container blocks (lists, quotes) are flattened through
// their children.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		for i := 0; i < n.Lines().Len(); i++ {
			seg := n.Lines().At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
