package request

import (
	"strings"
	"testing"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("  brake disc ", Structural{}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "brake disc" {
		t.Errorf("query = %q", r.Query())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("limit = %d, want %d", r.Limit(), DefaultLimit)
	}
	if !r.Filters().IsEmpty() {
		t.Error("expected no filters")
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	r, err := New("", Structural{}, MaxLimit+50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("limit = %d, want %d", r.Limit(), MaxLimit)
	}
}

func TestNew_QueryTooLong(t *testing.T) {
	if _, err := New(strings.Repeat("a", MaxQueryLength+1), Structural{}, 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestStructural_Expression(t *testing.T) {
	r, err := New("", Structural{Brand: "Yamaha", Model: " FZ ", Category: "", Year: 2016}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	must := r.Filters().Must()
	if len(must) != 4 {
		t.Fatalf("must = %d conditions, want 4", len(must))
	}
	if must[0].Key() != part.FieldBrand || must[0].Value() != "Yamaha" {
		t.Errorf("must[0] = %s=%s", must[0].Key(), must[0].Value())
	}
	if must[1].Value() != "FZ" {
		t.Errorf("model should be trimmed, got %q", must[1].Value())
	}
	if must[2].Key() != part.FieldYearFrom || *must[2].Range().LTE() != 2016 {
		t.Errorf("year_from condition wrong: %+v", must[2])
	}
	if must[3].Key() != part.FieldYearTo || *must[3].Range().GTE() != 2016 {
		t.Errorf("year_to condition wrong: %+v", must[3])
	}
}

func TestStructural_BadYear(t *testing.T) {
	if _, err := New("", Structural{Year: 12}, 10); err == nil {
		t.Fatal("expected error for year out of range")
	}
}
