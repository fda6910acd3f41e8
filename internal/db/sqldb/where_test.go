package sqldb

import (
	"reflect"
	"testing"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/search/filter"
)

var testColumns = map[string]string{
	"brand":     "bike_brand",
	"model":     "bike_model",
	"year_from": "year_from",
	"year_to":   "year_to",
	"price":     "price",
}

func mustExpr(t *testing.T, must, mustNot []filter.Condition) filter.Expression {
	t.Helper()
	e, err := filter.NewExpression(must, mustNot)
	if err != nil {
		t.Fatalf("expression: %v", err)
	}
	return e
}

func eq(t *testing.T, k, v string) filter.Condition {
	t.Helper()
	c, err := filter.NewEq(k, v)
	if err != nil {
		t.Fatalf("eq: %v", err)
	}
	return c
}

func rng(t *testing.T, k string, gte, lte *float64) filter.Condition {
	t.Helper()
	r, err := filter.NewRangeFilter(nil, gte, nil, lte)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	c, err := filter.NewRange(k, r)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return c
}

func f(v float64) *float64 { return &v }

func TestWhere_Empty(t *testing.T) {
	args := NewArgs(Postgres)
	got, err := Where(filter.Expression{}, testColumns, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" || len(args.Values()) != 0 {
		t.Errorf("expected empty clause, got %q %v", got, args.Values())
	}
}

func TestWhere_Dialects(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{Postgres, "bike_brand = $1 AND year_from <= $2 AND year_to >= $3"},
		{SQLite, "bike_brand = ? AND year_from <= ? AND year_to >= ?"},
	}
	for _, tc := range tests {
		t.Run(string(tc.dialect), func(t *testing.T) {
			expr := mustExpr(t, []filter.Condition{
				eq(t, "brand", "Yamaha"),
				rng(t, "year_from", nil, f(2017)),
				rng(t, "year_to", f(2017), nil),
			}, nil)

			args := NewArgs(tc.dialect)
			got, err := Where(expr, testColumns, args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
			want := []any{"Yamaha", int64(2017), int64(2017)}
			if !reflect.DeepEqual(args.Values(), want) {
				t.Errorf("args = %#v, want %#v", args.Values(), want)
			}
		})
	}
}

func TestWhere_ContainsEscapesLike(t *testing.T) {
	c, err := filter.NewContains("model", "100%_Pro")
	if err != nil {
		t.Fatal(err)
	}
	args := NewArgs(SQLite)
	got, err := Where(mustExpr(t, []filter.Condition{c}, nil), testColumns, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `LOWER(bike_model) LIKE ? ESCAPE '\'` {
		t.Errorf("unexpected clause %q", got)
	}
	if args.Values()[0] != `%100\%\_pro%` {
		t.Errorf("unexpected pattern %q", args.Values()[0])
	}
}

func TestWhere_MustNotAndFractionalRange(t *testing.T) {
	expr := mustExpr(t,
		[]filter.Condition{rng(t, "price", f(99.5), f(500))},
		[]filter.Condition{eq(t, "brand", "Hero")},
	)
	args := NewArgs(Postgres)
	got, err := Where(expr, testColumns, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "price >= $1 AND price <= $2 AND NOT (bike_brand = $3)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if args.Values()[0] != 99.5 || args.Values()[1] != int64(500) {
		t.Errorf("unexpected args %#v", args.Values())
	}
}

func TestWhere_UnknownField(t *testing.T) {
	expr := mustExpr(t, []filter.Condition{eq(t, "color", "red")}, nil)
	if _, err := Where(expr, testColumns, NewArgs(SQLite)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		driver  string
		want    Dialect
		wantErr bool
	}{
		{"pgx", Postgres, false},
		{"postgres", Postgres, false},
		{"sqlite", SQLite, false},
		{"sqlite3", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := DialectFor(tc.driver)
		if (err != nil) != tc.wantErr {
			t.Errorf("DialectFor(%q) err = %v", tc.driver, err)
		}
		if got != tc.want {
			t.Errorf("DialectFor(%q) = %q, want %q", tc.driver, got, tc.want)
		}
	}
}
