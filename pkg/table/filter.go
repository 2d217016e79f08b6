package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadFilter is returned for a filter expression without an operand.
var ErrBadFilter = errors.New("bad filter expression")

// Op is a filter comparison.
type Op string

const (
	OpEq       Op = "="
	OpNe       Op = "!="
	OpLt       Op = "<"
	OpLe       Op = "<="
	OpGt       Op = ">"
	OpGe       Op = ">="
	OpContains Op = "contains"
)

// Longest operators first so "<=" is not read as "<".
var ops = []Op{OpContains, OpNe, OpLe, OpGe, OpEq, OpLt, OpGt}

// Filter is one parsed column filter such as "> 2000" or "contains Ja".
type Filter struct {
	Op      Op
	Operand string
	num     float64
	numeric bool
}

// ParseFilter reads an expression. Without an operator a numeric operand
// means equality and anything else means contains.
func ParseFilter(expr string) (Filter, error) {
	s := strings.TrimSpace(expr)
	op := Op("")
	for _, o := range ops {
		if strings.HasPrefix(strings.ToLower(s), string(o)) {
			op = o
			s = strings.TrimSpace(s[len(o):])
			break
		}
	}
	s = strings.Trim(s, `"'`)
	if s == "" {
		return Filter{}, fmt.Errorf("%w: %q", ErrBadFilter, expr)
	}

	f := Filter{Op: op, Operand: s}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		f.num, f.numeric = n, true
	}
	if f.Op == "" {
		f.Op = OpContains
		if f.numeric {
			f.Op = OpEq
		}
	}
	return f, nil
}

// Match reports whether a cell passes the filter. Ordered comparisons need a
// numeric cell and operand, or fall back to text ordering.
func (f Filter) Match(cell string) bool {
	if f.Op == OpContains {
		return strings.Contains(strings.ToLower(cell), strings.ToLower(f.Operand))
	}

	var cmp int
	if n, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err == nil && f.numeric {
		switch {
		case n < f.num:
			cmp = -1
		case n > f.num:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(strings.ToLower(cell), strings.ToLower(f.Operand))
	}

	switch f.Op {
	case OpEq:
		return cmp == 0
	case OpNe:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	}
	return false
}
