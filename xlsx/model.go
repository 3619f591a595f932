package xlsx

import (
	"fmt"

	"github.com/aerissecure/docgen"
)

// Table is one worksheet read as records: the header row names the columns
// and every later non-empty row becomes a docgen.Row keyed by those names.
type Table struct {
	Sheet   string
	Columns []string     // header names in column order, made unique
	Records []docgen.Row // in sheet order
}

// Rows implements docgen.Source.
func (t Table) Rows() ([]docgen.Row, error) {
	return t.Records, nil
}

func (t Table) String() string {
	return fmt.Sprintf("Sheet: %s, Columns: %v, Records: %d", t.Sheet, t.Columns, len(t.Records))
}
