package docgen

import (
	"fmt"
	"strings"
)

// Value is a raw cell value as supplied by a data source: nil (absent),
// string, a numeric type or bool.
type Value any

// Row is an ordered mapping of column name to raw cell value. One row is one
// output record.
type Row struct {
	cols []string
	vals map[string]Value
}

// NewRow builds a Row from parallel column/value slices. Extra values are
// ignored, missing values are treated as absent.
func NewRow(cols []string, vals []Value) Row {
	r := Row{vals: make(map[string]Value, len(cols))}
	for i, c := range cols {
		var v Value
		if i < len(vals) {
			v = vals[i]
		}
		r.Set(c, v)
	}
	return r
}

// Set assigns a value, appending the column if it is new.
func (r *Row) Set(col string, v Value) {
	if r.vals == nil {
		r.vals = make(map[string]Value)
	}
	if _, ok := r.vals[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.vals[col] = v
}

// Get returns the raw value of col and whether the column exists in the row.
func (r Row) Get(col string) (Value, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// Columns returns the column names in source order.
func (r Row) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

func (r Row) String() string {
	parts := make([]string, 0, len(r.cols))
	for _, c := range r.cols {
		parts = append(parts, fmt.Sprintf("%s=%v", c, r.vals[c]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// FieldSpec selects one source column and says how it is displayed.
type FieldSpec struct {
	Column     string `yaml:"column"`
	Label      string `yaml:"label"`
	Bold       bool   `yaml:"bold"`
	BlankAfter bool   `yaml:"blank_after"`
}

// label falls back to the column name when no label was given.
func (f FieldSpec) label() string {
	if f.Label == "" {
		return f.Column
	}
	return f.Label
}

// LayoutMode selects how records are distributed over pages.
type LayoutMode int

const (
	OnePerPage LayoutMode = iota
	Grid
)

func (m LayoutMode) String() string {
	switch m {
	case Grid:
		return "grid"
	default:
		return "one_per_page"
	}
}

func (m *LayoutMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "one_per_page", "one-per-page", "single":
		*m = OnePerPage
	case "grid":
		*m = Grid
	default:
		return fmt.Errorf("unknown layout mode %q", string(b))
	}
	return nil
}

func (m LayoutMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Layout describes page arrangement. Rows and Cols are only used in Grid
// mode. FlattenCells replaces per-cell markers with SectionBreak separators
// for sinks that have no notion of an embedded container.
type Layout struct {
	Mode         LayoutMode `yaml:"mode"`
	Rows         int        `yaml:"rows"`
	Cols         int        `yaml:"cols"`
	FlattenCells bool       `yaml:"flatten_cells"`
}

// Capacity is the number of records that fit on one page.
func (l Layout) Capacity() int {
	if l.Mode != Grid {
		return 1
	}
	return l.Rows * l.Cols
}

func (l Layout) String() string {
	if l.Mode == Grid {
		return fmt.Sprintf("grid(%dx%d)", l.Rows, l.Cols)
	}
	return l.Mode.String()
}

// StyledLine is the atomic render unit.
type StyledLine struct {
	Text   string
	SizePt int
	Bold   bool
}

// Kind tags a Command.
type Kind int

const (
	KindLine Kind = iota
	KindBlankLine
	KindSectionBreak
	KindPageBreak
	KindCell
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBlankLine:
		return "blank"
	case KindSectionBreak:
		return "section"
	case KindPageBreak:
		return "page"
	case KindCell:
		return "cell"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Slot locates a record on the page. Grid is the layout the slot belongs to.
type Slot struct {
	Record int
	Page   int
	Row    int
	Col    int
	Grid   Layout
}

// Command is one layout instruction for a document sink. Line is set for
// KindLine, Slot for KindCell.
type Command struct {
	Kind Kind
	Line StyledLine
	Slot Slot
}

func (c Command) String() string {
	switch c.Kind {
	case KindLine:
		b := ""
		if c.Line.Bold {
			b = ",bold"
		}
		return fmt.Sprintf("line(%q,%dpt%s)", c.Line.Text, c.Line.SizePt, b)
	case KindCell:
		return fmt.Sprintf("cell(p%d,r%d,c%d)", c.Slot.Page, c.Slot.Row, c.Slot.Col)
	default:
		return c.Kind.String()
	}
}

// LineCmd wraps a StyledLine into a Command.
func LineCmd(l StyledLine) Command { return Command{Kind: KindLine, Line: l} }

var (
	BlankLine    = Command{Kind: KindBlankLine}
	SectionBreak = Command{Kind: KindSectionBreak}
	PageBreak    = Command{Kind: KindPageBreak}
)
