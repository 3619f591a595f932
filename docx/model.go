package docx

import (
	"fmt"
	"strings"
)

// Intermediate representation (IR) for DOCX documents.
//
// The same IR is built from a docgen command stream (BuildModel) and read
// back from a saved file (ParseDocumentModel), so the writer, the HTML
// preview and verification all work on one structure.

// -----------------------------------------------------------------------------
// Run-level information
// -----------------------------------------------------------------------------

// RunStyle captures the character formatting for a run of text.
type RunStyle struct {
	FontSizePt float64 // size in points, 0 means inherited
	Bold       bool
}

func (s RunStyle) String() string {
	return fmt.Sprintf("FontSizePt: %.1f, Bold: %t", s.FontSizePt, s.Bold)
}

// RenderRun represents a single run (\<w:r>) within a paragraph.
type RenderRun struct {
	Text      string
	Style     RunStyle
	PageBreak bool // run carries a page break
}

func (r RenderRun) String() string {
	return fmt.Sprintf("Text: %q, PageBreak: %t, Style: [%s]", r.Text, r.PageBreak, r.Style.String())
}

// -----------------------------------------------------------------------------
// Paragraph-level information
// -----------------------------------------------------------------------------

// ParagraphStyle captures paragraph-level formatting.
type ParagraphStyle struct {
	Separator bool // separates records sharing a page
}

func (s ParagraphStyle) String() string {
	return fmt.Sprintf("Separator: %t", s.Separator)
}

// RenderParagraph is the IR for a paragraph. A paragraph without runs is a
// blank line.
type RenderParagraph struct {
	Runs  []RenderRun
	Style ParagraphStyle
}

// Text concatenates the text of all runs.
func (p RenderParagraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// IsPageBreak reports whether the paragraph carries a page break.
func (p RenderParagraph) IsPageBreak() bool {
	for _, r := range p.Runs {
		if r.PageBreak {
			return true
		}
	}
	return false
}

func (p RenderParagraph) String() string {
	return fmt.Sprintf("Runs: %d, Text: %q, Style: [%s]", len(p.Runs), p.Text(), p.Style.String())
}

// -----------------------------------------------------------------------------
// Table-level information
// -----------------------------------------------------------------------------

// RenderTableCell is the IR for a single table cell. It can contain multiple
// paragraphs.
type RenderTableCell struct {
	Paragraphs []RenderParagraph
}

func (c RenderTableCell) String() string {
	return fmt.Sprintf("Paragraphs: %d", len(c.Paragraphs))
}

// RenderTableRow represents a row within a table.
type RenderTableRow struct {
	Cells []RenderTableCell
}

// RenderTable is the IR for a table. Grid pages are one table each.
type RenderTable struct {
	Rows []RenderTableRow
}

func (t RenderTable) String() string {
	cols := 0
	if len(t.Rows) > 0 {
		cols = len(t.Rows[0].Cells)
	}
	return fmt.Sprintf("Rows: %d, Cols: %d", len(t.Rows), cols)
}

// -----------------------------------------------------------------------------
// Block ordering
// -----------------------------------------------------------------------------

// DocumentBlock represents a top-level block element in the DOCX body – either
// a paragraph or a table.  Exactly one of Paragraph/Table will be non-nil.
type DocumentBlock struct {
	Paragraph *RenderParagraph
	Table     *RenderTable
}

// -----------------------------------------------------------------------------
// Top-level document model
// -----------------------------------------------------------------------------

// DocumentModel is the document body as paragraphs and tables in order.
type DocumentModel struct {
	Blocks []DocumentBlock
}

// Pages returns the number of pages, counting a page after the last break
// only if it has content.
func (d DocumentModel) Pages() int {
	pages, content := 0, false
	for _, blk := range d.Blocks {
		if blk.Paragraph != nil && blk.Paragraph.IsPageBreak() {
			pages++
			content = false
			continue
		}
		content = true
	}
	if content {
		pages++
	}
	return pages
}

func (d DocumentModel) String() string {
	return fmt.Sprintf("Blocks: %d, Pages: %d", len(d.Blocks), d.Pages())
}
