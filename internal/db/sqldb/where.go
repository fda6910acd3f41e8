package sqldb

import (
	"fmt"
	"math"
	"strings"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

// Where renders a filter expression as a SQL boolean expression.
// columns maps filter keys to column names; unknown keys are rejected.
// Returns "" for an empty expression. Must conditions are ANDed; each
// MustNot condition is negated and ANDed.
func Where(expr filter.Expression, columns map[string]string, args *Args) (string, error) {
	var parts []string

	for _, c := range expr.Must() {
		s, err := condition(c, columns, args)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	for _, c := range expr.MustNot() {
		s, err := condition(c, columns, args)
		if err != nil {
			return "", err
		}
		parts = append(parts, "NOT ("+s+")")
	}

	return strings.Join(parts, " AND "), nil
}

func condition(c filter.Condition, columns map[string]string, args *Args) (string, error) {
	col, ok := columns[c.Key()]
	if !ok {
		return "", fmt.Errorf("unknown filter field %q", c.Key())
	}

	switch c.Kind() {
	case filter.KindEq:
		return col + " = " + args.Add(c.Value()), nil
	case filter.KindContains:
		pattern := "%" + escapeLike(strings.ToLower(c.Value())) + "%"
		return "LOWER(" + col + ") LIKE " + args.Add(pattern) + ` ESCAPE '\'`, nil
	case filter.KindRange:
		return rangeCondition(col, c.Range(), args)
	default:
		return "", fmt.Errorf("unsupported filter kind %d on %q", c.Kind(), c.Key())
	}
}

func rangeCondition(col string, r *filter.Range, args *Args) (string, error) {
	if r == nil {
		return "", fmt.Errorf("range filter on %q has no bounds", col)
	}
	var parts []string
	bounds := []struct {
		op string
		v  *float64
	}{
		{">", r.GT()}, {">=", r.GTE()}, {"<", r.LT()}, {"<=", r.LTE()},
	}
	for _, b := range bounds {
		if b.v != nil {
			parts = append(parts, col+" "+b.op+" "+args.Add(numeric(*b.v)))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("range filter on %q has no bounds", col)
	}
	return strings.Join(parts, " AND "), nil
}

// numeric binds whole numbers as integers so integer columns compare
// without a float cast on PostgreSQL.
func numeric(v float64) any {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return int64(v)
	}
	return v
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
