package paper

// Section is a contiguous span of document text beginning at a recognized
// heading line and ending at the next heading or end of document.
type Section struct {
	Title   string `json:"title"`   // Heading line as it appeared, trimmed.
	Content string `json:"content"` // Body lines joined with newline.
}

// Document is the terminal output of the ingestion pipeline.
type Document struct {
	Title      *string   `json:"title"` // nil when no line on the first page qualifies.
	PDFPath    string    `json:"pdf_path"`
	Pages      int       `json:"pages"`
	Text       string    `json:"text"` // All page text joined with blank lines.
	Sections   []Section `json:"sections"`
	Source     string    `json:"source"`      // Raw input value, for traceability.
	SourceType string    `json:"source_type"` // Raw input kind.
}
