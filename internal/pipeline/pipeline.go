// Package pipeline assembles the ingestion stages: resolve the source to a
// local file, extract page text, segment into sections, and report one
// document or one error.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/papergest/internal/index"
	"github.com/dgallion1/papergest/internal/paper"
	"github.com/dgallion1/papergest/internal/parser"
	"github.com/dgallion1/papergest/internal/segment"
	"github.com/dgallion1/papergest/internal/source"
)

// SourceResolver produces a local file path for a descriptor.
type SourceResolver interface {
	Resolve(ctx context.Context, d source.Descriptor) (string, error)
}

// Pipeline runs the stages strictly in sequence; the first failure aborts and
// no partial document is ever returned.
type Pipeline struct {
	resolver SourceResolver
	idx      *index.Index // optional
	log      *slog.Logger
}

func New(resolver SourceResolver, idx *index.Index, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{resolver: resolver, idx: idx, log: log}
}

// Ingest resolves, extracts, and segments one paper.
func (p *Pipeline) Ingest(ctx context.Context, d source.Descriptor) (*paper.Document, error) {
	start := time.Now()

	path, err := p.resolver.Resolve(ctx, d)
	if err != nil {
		return nil, err
	}

	ext, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}
	pages, err := ext.ExtractPages(path)
	if err != nil {
		return nil, err
	}

	doc := &paper.Document{
		PDFPath:    path,
		Pages:      len(pages),
		Text:       strings.Join(pages, "\n\n"),
		Sections:   []paper.Section{},
		Source:     d.Value,
		SourceType: string(d.Kind),
	}
	if sections := segment.Pages(pages); sections != nil {
		doc.Sections = sections
	}
	if len(pages) > 0 {
		if title, ok := segment.Title(pages[0]); ok {
			doc.Title = &title
		}
	}

	p.record(ctx, doc)
	p.log.Info("ingested paper",
		"source", d.Value,
		"source_type", d.Kind,
		"pages", doc.Pages,
		"sections", len(doc.Sections),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}

// record writes the ingest to the paper index. Index failures are logged,
// never fatal.
func (p *Pipeline) record(ctx context.Context, doc *paper.Document) {
	if p.idx == nil {
		return
	}
	title := ""
	if doc.Title != nil {
		title = *doc.Title
	}
	err := p.idx.Record(ctx, index.Record{
		Source:     doc.Source,
		SourceType: doc.SourceType,
		PDFPath:    doc.PDFPath,
		Title:      title,
		Pages:      doc.Pages,
		Sections:   len(doc.Sections),
		IngestedAt: time.Now(),
	})
	if err != nil {
		p.log.Warn("index write failed", "source", doc.Source, "error", err)
	}
}
