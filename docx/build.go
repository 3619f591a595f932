package docx

import (
	"fmt"

	"github.com/aerissecure/docgen"
)

// BuildModel lays a docgen command stream out as a DocumentModel. Lines and
// blank lines become paragraphs, page breaks become page-break paragraphs and
// the cells of a grid page are collected into one table sized to the grid.
// Cells the stream never fills stay empty.
func BuildModel(cmds []docgen.Command) (DocumentModel, error) {
	var (
		m   DocumentModel
		tbl *RenderTable
		cur *RenderTableCell
	)

	add := func(p RenderParagraph) {
		if cur != nil {
			cur.Paragraphs = append(cur.Paragraphs, p)
			return
		}
		m.Blocks = append(m.Blocks, DocumentBlock{Paragraph: &p})
	}

	for i, c := range cmds {
		switch c.Kind {
		case docgen.KindLine:
			add(lineParagraph(c.Line))
		case docgen.KindBlankLine:
			add(RenderParagraph{})
		case docgen.KindSectionBreak:
			add(RenderParagraph{Style: ParagraphStyle{Separator: true}})
		case docgen.KindPageBreak:
			tbl, cur = nil, nil
			add(RenderParagraph{Runs: []RenderRun{{PageBreak: true}}})
		case docgen.KindCell:
			g := c.Slot.Grid
			if g.Rows < 1 || g.Cols < 1 || c.Slot.Row >= g.Rows || c.Slot.Col >= g.Cols {
				return DocumentModel{}, fmt.Errorf("command %d: cell (%d,%d) outside %s", i, c.Slot.Row, c.Slot.Col, g)
			}
			if tbl == nil {
				tbl = newGridTable(g.Rows, g.Cols)
				m.Blocks = append(m.Blocks, DocumentBlock{Table: tbl})
			}
			cur = &tbl.Rows[c.Slot.Row].Cells[c.Slot.Col]
		default:
			return DocumentModel{}, fmt.Errorf("command %d: unknown kind %s", i, c.Kind)
		}
	}
	return m, nil
}

func lineParagraph(l docgen.StyledLine) RenderParagraph {
	return RenderParagraph{Runs: []RenderRun{{
		Text:  l.Text,
		Style: RunStyle{FontSizePt: float64(l.SizePt), Bold: l.Bold},
	}}}
}

func newGridTable(rows, cols int) *RenderTable {
	t := &RenderTable{Rows: make([]RenderTableRow, rows)}
	for r := range t.Rows {
		t.Rows[r].Cells = make([]RenderTableCell, cols)
	}
	return t
}
