// Package table pages, sorts and filters rows of string cells the way the
// dashboard's data table does it natively.
package table

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultPageSize is used when no page size, or an unlisted one, is asked for.
const DefaultPageSize = 10

var baseSizes = []int{5, 10, 20, 50, 70}

// PageSizes returns the page size options for a table of n rows: 5, 10, 20,
// 50, 70 and n itself, ascending and without duplicates.
func PageSizes(n int) []int {
	seen := make(map[int]bool)
	var sizes []int
	for _, s := range append(append([]int(nil), baseSizes...), n) {
		if s <= 0 || seen[s] {
			continue
		}
		seen[s] = true
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}

// ValidPageSize reports whether size is one of the options for n rows.
func ValidPageSize(size, n int) bool {
	for _, s := range PageSizes(n) {
		if s == size {
			return true
		}
	}
	return false
}

// Query selects one page of a table. Page is zero based.
type Query struct {
	Page       int
	PageSize   int
	SortBy     string
	Descending bool
	Filters    map[string]string
}

// Result is one page of rows plus the numbers needed to draw a pager.
type Result struct {
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Total    int        `json:"total"`
	Pages    int        `json:"pages"`
}

// Apply filters, sorts and pages rows. Filters on unknown columns are
// ignored; so is an unknown sort column. A page past the end is clamped to
// the last page.
func Apply(columns []string, rows [][]string, q Query) (Result, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	matched := rows
	if len(q.Filters) > 0 {
		type colFilter struct {
			col int
			f   Filter
		}
		var filters []colFilter
		for col, expr := range q.Filters {
			i, ok := index[col]
			if !ok || strings.TrimSpace(expr) == "" {
				continue
			}
			f, err := ParseFilter(expr)
			if err != nil {
				return Result{}, err
			}
			filters = append(filters, colFilter{col: i, f: f})
		}

		matched = make([][]string, 0, len(rows))
	nextRow:
		for _, r := range rows {
			for _, cf := range filters {
				if !cf.f.Match(cell(r, cf.col)) {
					continue nextRow
				}
			}
			matched = append(matched, r)
		}
	}

	if i, ok := index[q.SortBy]; ok {
		sorted := append([][]string(nil), matched...)
		sort.SliceStable(sorted, func(a, b int) bool {
			if q.Descending {
				return less(cell(sorted[b], i), cell(sorted[a], i))
			}
			return less(cell(sorted[a], i), cell(sorted[b], i))
		})
		matched = sorted
	}

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := len(matched) / size
	if len(matched)%size != 0 || pages == 0 {
		pages++
	}
	page := q.Page
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}

	start := page * size
	end := len(matched)
	if size < end-start {
		end = start + size
	}

	return Result{
		Columns:  append([]string(nil), columns...),
		Rows:     append([][]string{}, matched[start:end]...),
		Page:     page,
		PageSize: size,
		Total:    len(matched),
		Pages:    pages,
	}, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// less orders numbers numerically, before any text, and text
// case-insensitively.
func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return fa < fb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
