package validation

import (
	"errors"
	"testing"
)

type profileRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	FullName string `json:"full_name" validate:"required,max=10"`
	Status   string `json:"status,omitempty" validate:"omitempty,oneof=pending shipped"`
}

func TestStruct_OK(t *testing.T) {
	if err := Struct(&profileRequest{UserID: 1, FullName: "Ravi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_FieldNamesFromJSONTags(t *testing.T) {
	err := Struct(&profileRequest{FullName: "a very long name", Status: "lost"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(verr.Fields), verr)
	}

	want := []string{
		"user_id is required",
		"full_name must be at most 10 characters",
		"status must be one of: pending shipped",
	}
	for i, w := range want {
		if verr.Fields[i].Message != w {
			t.Errorf("field %d: got %q, want %q", i, verr.Fields[i].Message, w)
		}
	}
}

func TestGet_Singleton(t *testing.T) {
	if Get() != Get() {
		t.Fatal("expected the same validator instance")
	}
}
