package xlsx

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aerissecure/docgen"
)

// ErrSheetNotFound is returned when WithSheet names a sheet the workbook
// does not have.
var ErrSheetNotFound = errors.New("sheet not found")

type readOptions struct {
	sheet string
}

// ReadOption configures ReadTable.
type ReadOption func(*readOptions)

// WithSheet selects the worksheet by name. The first sheet is used otherwise.
func WithSheet(name string) ReadOption {
	return func(o *readOptions) { o.sheet = name }
}

// ReadTable reads one worksheet from r/size. The first non-empty row is the
// header. Cells are returned as opaque values: numbers as float64, booleans
// as bool, blanks as nil and anything else as its formatted text.
func ReadTable(r io.ReaderAt, size int64, opts ...ReadOption) (Table, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := excelize.OpenReader(io.NewSectionReader(r, 0, size))
	if err != nil {
		return Table{}, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, fmt.Errorf("workbook has no sheets: %w", ErrSheetNotFound)
	}
	sheet := sheets[0]
	if o.sheet != "" {
		if !slices.Contains(sheets, o.sheet) {
			return Table{}, fmt.Errorf("%q: %w", o.sheet, ErrSheetNotFound)
		}
		sheet = o.sheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read rows from sheet %q: %w", sheet, err)
	}

	t := Table{Sheet: sheet}
	for rowIdx, row := range rows {
		vals, err := rowValues(f, sheet, rowIdx, row)
		if err != nil {
			return Table{}, err
		}
		if isBlank(vals) {
			continue
		}
		if t.Columns == nil {
			t.Columns = headerNames(vals)
			continue
		}
		if len(vals) > len(t.Columns) {
			vals = vals[:len(t.Columns)]
		}
		t.Records = append(t.Records, docgen.NewRow(t.Columns, vals))
	}
	return t, nil
}

// rowValues types the formatted texts of one row, indexed by zero-based
// column.
func rowValues(f *excelize.File, sheet string, rowIdx int, texts []string) ([]docgen.Value, error) {
	vals := make([]docgen.Value, len(texts))
	for colIdx, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
		if err != nil {
			return nil, err
		}
		typ, err := f.GetCellType(sheet, cellName)
		if err != nil {
			return nil, fmt.Errorf("cell %s!%s: %w", sheet, cellName, err)
		}
		vals[colIdx] = cellValue(f, sheet, cellName, typ, text)
	}
	return vals, nil
}

// cellValue turns a non-blank cell into a Value. Numbers are stored untyped
// by most writers, so any non-string cell whose display text is a plain
// number is read back as its raw float.
func cellValue(f *excelize.File, sheet, cellName string, typ excelize.CellType, text string) docgen.Value {
	switch typ {
	case excelize.CellTypeBool:
		return strings.EqualFold(text, "TRUE") || text == "1"
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return text
	}
	// dates and other styled numbers keep their display text
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return text
	}
	raw, err := f.GetCellValue(sheet, cellName, excelize.Options{RawCellValue: true})
	if err != nil {
		return text
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return text
}

func isBlank(vals []docgen.Value) bool {
	for _, v := range vals {
		if v != nil {
			return false
		}
	}
	return true
}

// headerNames turns the header row into unique column names. Blank headers
// become "Unnamed: <index>" and repeats get a ".1", ".2" suffix.
func headerNames(vals []docgen.Value) []string {
	names := make([]string, len(vals))
	used := make(map[string]bool, len(vals))
	counts := make(map[string]int)
	for i, v := range vals {
		name := docgen.Normalize(v)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for used[name] {
			counts[base]++
			name = fmt.Sprintf("%s.%d", base, counts[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}
