package index

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestRecordAndList(t *testing.T) {
	idx := openTestIndex(t)
	ctx := context.Background()

	rec := Record{
		Source:     "2301.00001",
		SourceType: "arxiv",
		PDFPath:    "/tmp/paper_cache/arxiv_2301.00001.pdf",
		Title:      "A Study of Something",
		Pages:      12,
		Sections:   5,
		IngestedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := idx.Record(ctx, rec); err != nil {
		t.Fatalf("record: %v", err)
	}

	records, err := idx.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.Source != rec.Source || got.SourceType != rec.SourceType {
		t.Errorf("key mismatch: got %q %q", got.Source, got.SourceType)
	}
	if got.Title != rec.Title || got.Pages != rec.Pages || got.Sections != rec.Sections {
		t.Errorf("fields mismatch: got %+v", got)
	}
	if !got.IngestedAt.Equal(rec.IngestedAt) {
		t.Errorf("expected ingested_at %v, got %v", rec.IngestedAt, got.IngestedAt)
	}
}

func TestRecord_ReingestReplacesRow(t *testing.T) {
	idx := openTestIndex(t)
	ctx := context.Background()

	base := Record{
		Source:     "paper.pdf",
		SourceType: "local",
		PDFPath:    "/data/paper.pdf",
		Pages:      3,
		IngestedAt: time.Now(),
	}
	if err := idx.Record(ctx, base); err != nil {
		t.Fatal(err)
	}
	base.Pages = 7
	base.Title = "Now With a Title"
	if err := idx.Record(ctx, base); err != nil {
		t.Fatal(err)
	}

	records, err := idx.List(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected upsert to keep 1 row, got %d", len(records))
	}
	if records[0].Pages != 7 || records[0].Title != "Now With a Title" {
		t.Errorf("expected replaced row, got %+v", records[0])
	}
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	idx := openTestIndex(t)
	ctx := context.Background()

	for i, src := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		err := idx.Record(ctx, Record{
			Source:     src,
			SourceType: "local",
			PDFPath:    "/data/" + src,
			IngestedAt: time.Date(2026, 8, 1, 10+i, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	records, err := idx.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(records))
	}
	if records[0].Source != "c.pdf" || records[1].Source != "b.pdf" {
		t.Errorf("expected newest first, got %q then %q", records[0].Source, records[1].Source)
	}
}

func TestList_Empty(t *testing.T) {
	idx := openTestIndex(t)

	records, err := idx.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
