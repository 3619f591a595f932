package xlsx

import (
	"fmt"
	"html"
	"strings"

	"github.com/aerissecure/docgen"
)

// RenderTableHTML renders the first maxRows records of t as an HTML table so
// the source data can be checked next to the document preview. A negative
// maxRows renders every record.
func RenderTableHTML(t Table, maxRows int) string {
	records := t.Records
	if maxRows >= 0 && maxRows < len(records) {
		records = records[:maxRows]
	}

	var builder strings.Builder
	builder.WriteString(`<style>
`)
	builder.WriteString(`.table { border-collapse: collapse; margin-bottom: 2em; }
`)
	builder.WriteString(`.table td, .table th { border: 1px solid #333; padding: 4px 8px; white-space: nowrap; }
`)
	builder.WriteString(`.table th { background-color: #EEEEEE; text-align: left; }
`)
	builder.WriteString(`</style>
`)

	builder.WriteString(fmt.Sprintf(`<div class="sheet" data-name="%s">
`, html.EscapeString(t.Sheet)))
	builder.WriteString(`<div style="width:100%;overflow-x:auto;">
`)
	builder.WriteString(`<table class="table">
`)

	builder.WriteString("  <tr>\n")
	for _, col := range t.Columns {
		builder.WriteString(fmt.Sprintf("    <th>%s</th>\n", html.EscapeString(col)))
	}
	builder.WriteString("  </tr>\n")

	for i, rec := range records {
		builder.WriteString(fmt.Sprintf("  <tr data-row=\"%d\">\n", i))
		for _, col := range t.Columns {
			v, _ := rec.Get(col)
			escaped := html.EscapeString(docgen.Normalize(v))
			// explicit line breaks inside a cell
			escaped = strings.ReplaceAll(escaped, "\n", "<br>")
			builder.WriteString(fmt.Sprintf("    <td>%s</td>\n", escaped))
		}
		builder.WriteString("  </tr>\n")
	}
	builder.WriteString("</table>\n</div>\n</div>\n")
	return builder.String()
}
