package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var ErrMissingColumn = errors.New("missing column")

// ParseError reports a cell that could not be read as a number.
type ParseError struct {
	Column string
	Row    int // zero-based data row, header excluded
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot parse %q as number: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Table is a row-ordered dataset addressed by column name. Cells are kept as
// read and only converted when a column is requested, so a dataset that
// lacks one metric column still serves every other column.
type Table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func NewTable(header []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		index[name] = i
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(header))
		}
	}

	return &Table{
		header: append([]string(nil), header...),
		index:  index,
		rows:   rows,
	}, nil
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Columns() []string {
	return append([]string(nil), t.header...)
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// MissingColumns returns the entries of names absent from the header.
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Float64s parses a whole column. Empty cells read as NaN.
func (t *Table) Float64s(name string) ([]float64, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}

	values := make([]float64, len(t.rows))
	for i, row := range t.rows {
		v, err := parseCell(row[col])
		if err != nil {
			return nil, &ParseError{Column: name, Row: i, Value: row[col], Err: err}
		}
		values[i] = v
	}
	return values, nil
}

// NodeSizes returns the distinct values of the nodes column in ascending
// numeric order.
func (t *Table) NodeSizes() ([]float64, error) {
	nodes, err := t.Float64s(ColumnNodes)
	if err != nil {
		return nil, err
	}
	return Distinct(nodes), nil
}

// Group is the set of rows sharing one value of a key column.
type Group struct {
	Key  float64
	Rows []int // table order
}

// GroupBy partitions the rows on column. Groups come back in ascending key
// order; rows with an empty key cell belong to no group.
func (t *Table) GroupBy(column string) ([]Group, error) {
	keys, err := t.Float64s(column)
	if err != nil {
		return nil, err
	}

	byKey := make(map[float64][]int)
	for i, k := range keys {
		if math.IsNaN(k) {
			continue
		}
		byKey[k] = append(byKey[k], i)
	}

	groups := make([]Group, 0, len(byKey))
	for _, k := range Distinct(keys) {
		groups = append(groups, Group{Key: k, Rows: byKey[k]})
	}
	return groups, nil
}

// Measurements converts every row into a typed record. It needs the full
// column set.
func (t *Table) Measurements() ([]Measurement, error) {
	if missing := t.MissingColumns(RequiredColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	cols := make(map[string][]float64, len(RequiredColumns))
	for _, name := range RequiredColumns {
		values, err := t.Float64s(name)
		if err != nil {
			return nil, err
		}
		cols[name] = values
	}

	ms := make([]Measurement, t.Len())
	for i := range ms {
		ms[i] = Measurement{
			Nodes:            int64(cols[ColumnNodes][i]),
			Workers:          int64(cols[ColumnWorkers][i]),
			BFSTime:          cols[ColumnBFSTime][i],
			DFSTime:          cols[ColumnDFSTime][i],
			PageRankTime:     cols[ColumnPageRankTime][i],
			MSTTime:          cols[ColumnMSTTime][i],
			ShortestPathTime: cols[ColumnShortestPathTime][i],
		}
	}
	return ms, nil
}

// Distinct returns the unique values of vs sorted ascending. NaN is dropped.
func Distinct(vs []float64) []float64 {
	seen := make(map[float64]struct{}, len(vs))
	var out []float64
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
