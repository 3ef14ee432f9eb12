package models

// Table is an ordered sequence of records plus the union of their column
// names in first-seen order. It is the sole structure passed between
// pipeline stages; each stage builds and returns a new table, so a table
// has exactly one owner at a time.
type Table struct {
	rows    []*Record
	columns []string
	colSet  map[string]struct{}
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		colSet: make(map[string]struct{}),
	}
}

// Append adds a record to the table, registering any columns not seen yet.
func (t *Table) Append(r *Record) {
	t.rows = append(t.rows, r)
	for col := range r.Data {
		t.addColumn(col)
	}
}

// addColumn registers a column in first-seen order. Because Go map
// iteration order is random, callers that need a deterministic header
// should register columns explicitly via SetColumns.
func (t *Table) addColumn(col string) {
	if _, ok := t.colSet[col]; ok {
		return
	}
	t.colSet[col] = struct{}{}
	t.columns = append(t.columns, col)
}

// SetColumns fixes the column order explicitly. Columns already present
// keep their values; columns present on records but missing from the list
// are appended after it.
func (t *Table) SetColumns(columns []string) {
	t.columns = nil
	t.colSet = make(map[string]struct{}, len(columns))
	for _, col := range columns {
		t.addColumn(col)
	}
	for _, r := range t.rows {
		for col := range r.Data {
			t.addColumn(col)
		}
	}
}

// Columns returns the column names in order. The returned slice is a copy.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table has registered the column.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.colSet[col]
	return ok
}

// Rows returns the records in insertion order.
func (t *Table) Rows() []*Record {
	return t.rows
}

// Row returns the record at index i.
func (t *Table) Row(i int) *Record {
	return t.rows[i]
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Filter returns a new table containing only the rows for which keep
// returns true. Column order is preserved, row order is preserved, and
// the surviving records are shared, not copied.
func (t *Table) Filter(keep func(*Record) bool) *Table {
	out := NewTable()
	out.SetColumns(t.columns)
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}
