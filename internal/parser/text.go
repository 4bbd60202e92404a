package parser

import (
	"os"
	"strings"
)

// TextExtractor handles plain text files. Form feeds act as page separators;
// a file without any yields a single page.
type TextExtractor struct{}

func (e *TextExtractor) ExtractPages(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	return strings.Split(string(data), "\f"), nil
}
