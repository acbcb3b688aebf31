package report

import "timing-report/internal/dataset"

// Metric is one algorithm timing column and the title of its chart.
type Metric struct {
	Field string
	Title string
}

// Catalog is fixed; charts are produced in this order whatever columns the
// dataset carries.
var Catalog = []Metric{
	{Field: dataset.ColumnBFSTime, Title: "BFS Execution Time"},
	{Field: dataset.ColumnDFSTime, Title: "DFS Execution Time"},
	{Field: dataset.ColumnPageRankTime, Title: "PageRank Execution Time"},
	{Field: dataset.ColumnMSTTime, Title: "Minimum Spanning Tree Execution Time"},
	{Field: dataset.ColumnShortestPathTime, Title: "Single Source Shortest Path Execution Time"},
}

const (
	XAxisLabel = "Number of Workers"
	YAxisLabel = "Time (s)"
)
