package docx

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/aerissecure/docgen"
)

// DebugHTML controls whether extra data attributes with raw style info are included in the rendered HTML output.
var DebugHTML bool

// DocxToHTML is a convenience wrapper that converts a DOCX reader to HTML
// using the intermediate representation defined in this package.
func DocxToHTML(r io.ReaderAt, size int64) (string, error) {
	ir, err := ParseDocumentModel(r, size)
	if err != nil {
		return "", err
	}
	return RenderDocumentHTML(ir), nil
}

// RenderHTML renders a docgen command stream as an HTML preview. It goes
// through the same model the DOCX writer uses, so the preview shows the
// document structure that will be saved.
func RenderHTML(cmds []docgen.Command) (string, error) {
	m, err := BuildModel(cmds)
	if err != nil {
		return "", err
	}
	return RenderDocumentHTML(m), nil
}

// -----------------------------------------------------------------------------
// Run-level helpers
// -----------------------------------------------------------------------------

func runStyleToCSS(s RunStyle) string {
	var b strings.Builder
	if s.FontSizePt > 0 {
		b.WriteString(fmt.Sprintf("font-size:%.1fpt;", s.FontSizePt))
	}
	if s.Bold {
		b.WriteString("font-weight:bold;")
	}
	return b.String()
}

// -----------------------------------------------------------------------------
// Paragraph & Run rendering
// -----------------------------------------------------------------------------

func renderRunsHTML(runs []RenderRun) string {
	var b strings.Builder
	for _, run := range runs {
		if run.PageBreak {
			continue
		}
		text := html.EscapeString(run.Text)
		text = strings.ReplaceAll(text, "\n", "<br>")
		css := runStyleToCSS(run.Style)
		debugAttr := ""
		if DebugHTML {
			debugAttr = fmt.Sprintf(" data-run-style=\"%s\"", html.EscapeString(run.Style.String()))
		}
		if css != "" {
			b.WriteString(fmt.Sprintf("<span style=\"%s\"%s>%s</span>", css, debugAttr, text))
		} else {
			b.WriteString(fmt.Sprintf("<span%s>%s</span>", debugAttr, text))
		}
	}
	return b.String()
}

func renderParagraphHTML(p RenderParagraph) string {
	switch {
	case p.IsPageBreak():
		return "<hr class=\"page-break\">\n"
	case p.Style.Separator:
		return "<hr class=\"separator\">\n"
	case len(p.Runs) == 0:
		return "<p>&nbsp;</p>\n"
	}
	debugAttr := ""
	if DebugHTML {
		debugAttr = fmt.Sprintf(" data-para-style=\"%s\"", html.EscapeString(p.Style.String()))
	}
	return fmt.Sprintf("<p%s>%s</p>\n", debugAttr, renderRunsHTML(p.Runs))
}

// -----------------------------------------------------------------------------
// Table rendering
// -----------------------------------------------------------------------------

func renderTableHTML(t RenderTable) string {
	var b strings.Builder
	b.WriteString("<table class=\"grid\">\n")
	for r, row := range t.Rows {
		b.WriteString("  <tr>")
		for c, cell := range row.Cells {
			var cellHTML string
			if len(cell.Paragraphs) == 0 {
				cellHTML = "&nbsp;"
			} else {
				var paraB strings.Builder
				for _, p := range cell.Paragraphs {
					paraB.WriteString(renderParagraphHTML(p))
				}
				cellHTML = paraB.String()
			}
			debugAttr := ""
			if DebugHTML {
				debugAttr = fmt.Sprintf(" data-cell=\"%d,%d\"", r, c)
			}
			b.WriteString(fmt.Sprintf("    <td%s>%s</td>", debugAttr, cellHTML))
		}
		b.WriteString("  </tr>\n")
	}
	b.WriteString("</table>\n")
	return b.String()
}

// -----------------------------------------------------------------------------
// Top-level rendering entry point
// -----------------------------------------------------------------------------

// RenderDocumentHTML converts the DocumentModel into an HTML string.
func RenderDocumentHTML(m DocumentModel) string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(`<style>
`)
	b.WriteString(`p { margin: 0; }
`)
	b.WriteString(`.grid { border-collapse: collapse; table-layout: fixed; width: 100%; }
`)
	b.WriteString(`.grid td { border: 1px solid #333; padding: 4px; vertical-align: top; }
`)
	b.WriteString(`.page-break { border: 0; border-top: 2px dashed #999; margin: 2em 0; page-break-after: always; }
`)
	b.WriteString(`.separator { border: 0; border-top: 1px solid #ccc; }
`)
	b.WriteString(`</style>
`)

	for _, blk := range m.Blocks {
		if blk.Paragraph != nil {
			b.WriteString(renderParagraphHTML(*blk.Paragraph))
		} else if blk.Table != nil {
			b.WriteString(renderTableHTML(*blk.Table))
		}
	}

	b.WriteString("</body></html>\n")
	return b.String()
}
