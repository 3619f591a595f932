package docx

import (
	"fmt"
	"io"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// ParseDocumentModel reads a DOCX document from the provided reader and size
// and builds a DocumentModel intermediate representation. Only the structure
// the writer produces is captured: paragraphs with bold/size runs and
// page breaks, and tables of paragraphs.
func ParseDocumentModel(r io.ReaderAt, size int64) (DocumentModel, error) {
	doc, err := document.Read(r, size)
	if err != nil {
		return DocumentModel{}, fmt.Errorf("failed to read docx: %w", err)
	}

	var mdl DocumentModel

	// ---- Build lookup maps from underlying XML ptr -> high-level wrapper ----
	pMap := make(map[*wml.CT_P]document.Paragraph)
	for _, p := range doc.Paragraphs() {
		pMap[p.X()] = p
	}

	tMap := make(map[*wml.CT_Tbl]document.Table)
	for _, tbl := range doc.Tables() {
		tMap[tbl.X()] = tbl
	}

	// ---- Walk body elements in order ----
	body := doc.X().Body
	if body == nil {
		// Empty document
		return mdl, nil
	}

	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				if par, ok := pMap[cp]; ok {
					rp := convertParagraph(par)
					mdl.Blocks = append(mdl.Blocks, DocumentBlock{Paragraph: &rp})
				}
			}
			for _, ct := range c.Tbl {
				if tbl, ok := tMap[ct]; ok {
					rt := convertTable(tbl)
					mdl.Blocks = append(mdl.Blocks, DocumentBlock{Table: &rt})
				}
			}
		}
	}

	return mdl, nil
}

// convertRun builds a RenderRun from a unioffice Run. The size comes from the
// run's own properties; inherited sizes are left at zero.
func convertRun(r document.Run) RenderRun {
	rr := RenderRun{
		Text: r.Text(),
		Style: RunStyle{Bold: r.Properties().IsBold()},
	}
	if rpr := r.X().RPr; rpr != nil && rpr.Sz != nil && rpr.Sz.ValAttr.ST_UnsignedDecimalNumber != nil {
		// half-points
		rr.Style.FontSizePt = float64(*rpr.Sz.ValAttr.ST_UnsignedDecimalNumber) / 2
	}
	for _, ic := range r.X().EG_RunInnerContent {
		if ic.Br != nil && ic.Br.TypeAttr == wml.ST_BrTypePage {
			rr.PageBreak = true
		}
	}
	return rr
}

// convertParagraph converts a unioffice Paragraph into the RenderParagraph IR.
func convertParagraph(p document.Paragraph) RenderParagraph {
	rp := RenderParagraph{}
	for _, run := range p.Runs() {
		rp.Runs = append(rp.Runs, convertRun(run))
	}
	return rp
}

// convertTable converts a unioffice Table into the RenderTable IR.
func convertTable(t document.Table) RenderTable {
	rt := RenderTable{}

	for _, row := range t.Rows() {
		rr := RenderTableRow{}
		for _, cell := range row.Cells() {
			rc := RenderTableCell{}
			for _, p := range cell.Paragraphs() {
				rc.Paragraphs = append(rc.Paragraphs, convertParagraph(p))
			}
			rr.Cells = append(rr.Cells, rc)
		}
		rt.Rows = append(rt.Rows, rr)
	}

	return rt
}
