package xlsx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/aerissecure/docgen"
)

// buildWorkbook writes cells (sheet -> ref -> value) with excelize and
// returns a reader over the saved file.
func buildWorkbook(t *testing.T, sheets map[string]map[string]any, order ...string) (*bytes.Reader, int64) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for ref, v := range sheets[name] {
			require.NoError(t, f.SetCellValue(name, ref, v))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes()), int64(buf.Len())
}

func addressBook() map[string]map[string]any {
	return map[string]map[string]any{
		"Records": {
			"A1": "Name", "B1": "Pin", "C1": "Name", "D1": "Active",
			"A2": "bob", "B2": 781128.0, "C2": "Robert", "D2": true,
			"A3": "amy", "B3": 560001, "D3": false,
			// row 4 left blank
			"A5": "  cal ", "B5": 12.5,
		},
		"Audit": {
			"B2": "Office",
			"B3": "north",
		},
	}
}

func TestReadTable(t *testing.T) {
	r, size := buildWorkbook(t, addressBook(), "Records", "Audit")

	tbl, err := ReadTable(r, size)
	require.NoError(t, err)

	assert.Equal(t, "Records", tbl.Sheet)
	assert.Equal(t, []string{"Name", "Pin", "Name.1", "Active"}, tbl.Columns)
	require.Len(t, tbl.Records, 3, "blank row skipped")

	bob := tbl.Records[0]
	v, ok := bob.Get("Pin")
	require.True(t, ok)
	assert.Equal(t, 781128.0, v)
	assert.Equal(t, "781128", docgen.Normalize(v))
	v, _ = bob.Get("Name.1")
	assert.Equal(t, "Robert", v)
	v, _ = bob.Get("Active")
	assert.Equal(t, true, v)

	amy := tbl.Records[1]
	v, ok = amy.Get("Name.1")
	assert.True(t, ok, "short rows keep every header column")
	assert.Nil(t, v)
	v, _ = amy.Get("Pin")
	assert.Equal(t, "560001", docgen.Normalize(v))

	cal := tbl.Records[2]
	v, _ = cal.Get("Name")
	assert.Equal(t, "cal", docgen.Normalize(v))
	v, _ = cal.Get("Pin")
	assert.Equal(t, "12.5", docgen.Normalize(v))

	rows, err := tbl.Rows()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestReadTableSharedStrings(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellStr("Sheet1", "B1", "Pin"))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "bob"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 781128))
	require.NoError(t, f.SetCellStr("Sheet1", "A3", "Name"))
	require.NoError(t, f.SetCellStr("Sheet1", "B3", "007"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := ReadTable(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Pin"}, tbl.Columns)
	require.Len(t, tbl.Records, 2)

	v, _ := tbl.Records[0].Get("Name")
	assert.Equal(t, "bob", v)
	v, _ = tbl.Records[0].Get("Pin")
	assert.Equal(t, 781128.0, v)

	// the same shared string twice, and numeric-looking text stays text
	v, _ = tbl.Records[1].Get("Name")
	assert.Equal(t, "Name", v)
	v, _ = tbl.Records[1].Get("Pin")
	assert.Equal(t, "007", v)
}

func TestReadTableSheetSelection(t *testing.T) {
	r, size := buildWorkbook(t, addressBook(), "Records", "Audit")

	tbl, err := ReadTable(r, size, WithSheet("Audit"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Unnamed: 0", "Office"}, tbl.Columns, "header is the first non-empty row")
	require.Len(t, tbl.Records, 1)
	v, _ := tbl.Records[0].Get("Office")
	assert.Equal(t, "north", v)

	_, err = ReadTable(r, size, WithSheet("Missing"))
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestReadTableNotAWorkbook(t *testing.T) {
	data := []byte("not a zip file")
	_, err := ReadTable(bytes.NewReader(data), int64(len(data)))
	assert.Error(t, err)
}

func TestEndToEndThroughAssembler(t *testing.T) {
	r, size := buildWorkbook(t, addressBook(), "Records")
	tbl, err := ReadTable(r, size)
	require.NoError(t, err)

	cfg := docgen.Defaults()
	cfg.ToFields = []docgen.FieldSpec{
		{Column: "Name", Label: "Name", Bold: true},
		{Column: "Pin", Label: "PIN"},
	}
	a, err := docgen.NewAssembler(cfg)
	require.NoError(t, err)

	rows, err := tbl.Rows()
	require.NoError(t, err)
	cmds := a.Preview(rows, 2)
	assert.Equal(t, []docgen.Command{
		docgen.LineCmd(docgen.StyledLine{Text: "NAME: BOB", SizePt: 14, Bold: true}),
		docgen.LineCmd(docgen.StyledLine{Text: "PIN: 781128", SizePt: 14}),
		docgen.BlankLine,
		docgen.PageBreak,
		docgen.LineCmd(docgen.StyledLine{Text: "NAME: AMY", SizePt: 14, Bold: true}),
		docgen.LineCmd(docgen.StyledLine{Text: "PIN: 560001", SizePt: 14}),
		docgen.BlankLine,
		docgen.PageBreak,
	}, cmds)
}

func TestRenderTableHTML(t *testing.T) {
	tbl := Table{
		Sheet:   "A&B",
		Columns: []string{"Name", "Pin"},
		Records: []docgen.Row{
			docgen.NewRow([]string{"Name", "Pin"}, []docgen.Value{"<bob>", 781128.0}),
			docgen.NewRow([]string{"Name", "Pin"}, []docgen.Value{"amy", nil}),
		},
	}
	out := RenderTableHTML(tbl, 1)
	assert.Contains(t, out, `data-name="A&amp;B"`)
	assert.Contains(t, out, "<td>&lt;bob&gt;</td>")
	assert.Contains(t, out, "<td>781128</td>")
	assert.NotContains(t, out, "amy")
	assert.Equal(t, 1, strings.Count(out, `data-row=`))

	assert.Contains(t, RenderTableHTML(tbl, -1), "amy")
}
