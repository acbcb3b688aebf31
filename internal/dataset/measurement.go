package dataset

import (
	"strconv"
)

// Column names of the timing_results.csv header.
const (
	ColumnNodes            = "nodes"
	ColumnWorkers          = "workers"
	ColumnBFSTime          = "bfs_time"
	ColumnDFSTime          = "dfs_time"
	ColumnPageRankTime     = "pagerank_time"
	ColumnMSTTime          = "mst_time"
	ColumnShortestPathTime = "shortest_path_time"
)

// RequiredColumns lists every column a complete timing dataset carries, in
// the order the producer writes them after the two key columns.
var RequiredColumns = []string{
	ColumnNodes,
	ColumnWorkers,
	ColumnBFSTime,
	ColumnDFSTime,
	ColumnPageRankTime,
	ColumnMSTTime,
	ColumnShortestPathTime,
}

// Measurement is one timing row: a graph size, a worker count and the
// execution time in seconds of each algorithm.
type Measurement struct {
	Nodes            int64
	Workers          int64
	BFSTime          float64
	DFSTime          float64
	PageRankTime     float64
	MSTTime          float64
	ShortestPathTime float64
}

// Value returns the named column of the measurement as a float.
func (m Measurement) Value(column string) (float64, bool) {
	switch column {
	case ColumnNodes:
		return float64(m.Nodes), true
	case ColumnWorkers:
		return float64(m.Workers), true
	case ColumnBFSTime:
		return m.BFSTime, true
	case ColumnDFSTime:
		return m.DFSTime, true
	case ColumnPageRankTime:
		return m.PageRankTime, true
	case ColumnMSTTime:
		return m.MSTTime, true
	case ColumnShortestPathTime:
		return m.ShortestPathTime, true
	default:
		return 0, false
	}
}

func (m Measurement) record() []string {
	return []string{
		strconv.FormatInt(m.Nodes, 10),
		strconv.FormatInt(m.Workers, 10),
		strconv.FormatFloat(m.BFSTime, 'g', -1, 64),
		strconv.FormatFloat(m.DFSTime, 'g', -1, 64),
		strconv.FormatFloat(m.PageRankTime, 'g', -1, 64),
		strconv.FormatFloat(m.MSTTime, 'g', -1, 64),
		strconv.FormatFloat(m.ShortestPathTime, 'g', -1, 64),
	}
}

// FromMeasurements builds a table with the full column set, keeping the
// order of ms.
func FromMeasurements(ms []Measurement) (*Table, error) {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, m.record())
	}
	return NewTable(RequiredColumns, rows)
}
