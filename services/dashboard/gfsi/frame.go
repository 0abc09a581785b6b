package gfsi

// Frame is a header plus string rows, the shape every source is reduced to
// before merging.
type Frame struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Index returns the position of column name, or -1.
func (f Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the frame carries column name.
func (f Frame) Has(name string) bool {
	return f.Index(name) >= 0
}

// Require returns a SchemaError listing every absent column.
func (f Frame) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !f.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: f.Name, Missing: missing}
	}
	return nil
}

// Rename returns a copy with columns renamed per mapping. Rows are shared.
func (f Frame) Rename(mapping map[string]string) Frame {
	cols := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		if to, ok := mapping[c]; ok {
			cols[i] = to
		} else {
			cols[i] = c
		}
	}
	return Frame{Name: f.Name, Columns: cols, Rows: f.Rows}
}

// Drop returns a copy without the named columns.
func (f Frame) Drop(names ...string) Frame {
	drop := make(map[int]bool)
	for _, n := range names {
		if i := f.Index(n); i >= 0 {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return f
	}

	keep := make([]int, 0, len(f.Columns)-len(drop))
	for i := range f.Columns {
		if !drop[i] {
			keep = append(keep, i)
		}
	}

	out := Frame{Name: f.Name, Columns: pick(f.Columns, keep), Rows: make([][]string, len(f.Rows))}
	for r, row := range f.Rows {
		out.Rows[r] = pick(row, keep)
	}
	return out
}

// Column returns every value of column name; nil if absent.
func (f Frame) Column(name string) []string {
	idx := f.Index(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = cell(row, idx)
	}
	return out
}

func pick(values []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = cell(values, j)
	}
	return out
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
