package docx

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/aerissecure/docgen"
)

// Writer is a docgen.Sink that renders the command stream into a DOCX
// document.
type Writer struct {
	doc *document.Document
	log zerolog.Logger
}

// NewWriter returns a Writer over a new, empty document.
func NewWriter(log zerolog.Logger) *Writer {
	return &Writer{doc: document.New(), log: log}
}

// Emit implements docgen.Sink.
func (w *Writer) Emit(cmds []docgen.Command) error {
	m, err := BuildModel(cmds)
	if err != nil {
		return err
	}
	w.WriteModel(m)
	w.log.Debug().Int("commands", len(cmds)).Int("blocks", len(m.Blocks)).Int("pages", m.Pages()).Msg("wrote document body")
	return nil
}

// WriteModel appends the blocks of m to the document.
func (w *Writer) WriteModel(m DocumentModel) {
	for _, blk := range m.Blocks {
		switch {
		case blk.Paragraph != nil:
			writeParagraph(w.doc.AddParagraph(), *blk.Paragraph)
		case blk.Table != nil:
			w.writeTable(*blk.Table)
		}
	}
}

// Save serializes the document to out.
func (w *Writer) Save(out io.Writer) error {
	if err := w.doc.Save(out); err != nil {
		return fmt.Errorf("failed to save docx: %w", err)
	}
	return nil
}

// SaveToFile serializes the document to path.
func (w *Writer) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := w.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeParagraph(p document.Paragraph, rp RenderParagraph) {
	for _, rr := range rp.Runs {
		run := p.AddRun()
		if rr.PageBreak {
			run.AddPageBreak()
			continue
		}
		run.AddText(rr.Text)
		props := run.Properties()
		if rr.Style.Bold {
			props.SetBold(true)
		}
		if rr.Style.FontSizePt > 0 {
			props.SetSize(measurement.Distance(rr.Style.FontSizePt) * measurement.Point)
		}
	}
}

// writeTable renders a grid page as a bordered table spanning the page width.
// Every cell gets at least one paragraph, which Word requires.
func (w *Writer) writeTable(t RenderTable) {
	tbl := w.doc.AddTable()
	tbl.Properties().SetWidthPercent(100)
	borders := tbl.Properties().Borders()
	borders.SetAll(wml.ST_BorderSingle, color.Auto, 1*measurement.Point)

	for _, row := range t.Rows {
		tr := tbl.AddRow()
		for _, cell := range row.Cells {
			tc := tr.AddCell()
			if len(cell.Paragraphs) == 0 {
				tc.AddParagraph()
				continue
			}
			for _, p := range cell.Paragraphs {
				writeParagraph(tc.AddParagraph(), p)
			}
		}
	}
}
