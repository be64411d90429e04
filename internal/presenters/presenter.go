package presenters

import (
	"sort"
	"strings"
)

// Presenter turns command results into rows for every output format.
type Presenter interface {
	Title() string

	// Headers returns the column headers for table/csv views
	Headers() []string

	Rows() [][]string

	// Raw returns the underlying data structure for JSON/YAML output
	Raw() interface{}

	// SortableColumns lists the headers accepted by SortBy.
	SortableColumns() []string

	// SortBy orders the rows by column. It returns false for a column that
	// cannot be sorted.
	SortBy(column string) bool

	// DefaultSort is the column used when --sort is not given; empty keeps
	// the natural order.
	DefaultSort() string
}

// columnIndex finds column among headers, ignoring case.
func columnIndex(headers []string, column string) int {
	for i, h := range headers {
		if strings.EqualFold(h, column) {
			return i
		}
	}
	return -1
}

// sortRows orders rows in place by the cell at idx, keeping ties stable.
func sortRows(rows [][]string, idx int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][idx] < rows[j][idx]
	})
}
