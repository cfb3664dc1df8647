package http

import (
	"errors"
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestPhoneValidation(t *testing.T) {
	type P struct {
		Phone string `json:"phone_number" validate:"phone"`
	}
	cv := NewValidator()

	for _, s := range []string{"9629317944", "+6281234567", "1234567", "123456789012345", "+12345678901234"} {
		if err := cv.Validate(P{Phone: s}); err != nil {
			t.Fatalf("expected %q to be valid, got %v", s, err)
		}
	}
	for _, s := range []string{"", "123456", "12345678901234567", "+123456789012345", "+123456", "98-765-4321", "phone"} {
		err := cv.Validate(P{Phone: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "phone_number", "7-15 digits") {
			t.Fatalf("expected phone message for %q, got %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Rate float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{0, 1.29, 2.00, 10.5, 14} {
		if err := cv.Validate(P{Rate: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Rate: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "Rate", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name   string  `json:"name" validate:"required"`
		Age    int     `json:"age" validate:"gte=18"`
		Amount float64 `json:"amount" validate:"gt=0"`
		Max    int     `json:"max" validate:"lte=5"`
		Short  string  `json:"short" validate:"max=3"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Name: "", Age: 17, Amount: 0, Max: 6, Short: "abcd"})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	checks := []struct{ field, msg string }{
		{"name", "is required"},
		{"age", "greater than or equal to 18"},
		{"amount", "greater than 0"},
		{"max", "less than or equal to 5"},
		{"short", "at most 3 characters"},
	}
	for _, c := range checks {
		if !containsFieldMsg(fe, c.field, c.msg) {
			t.Fatalf("missing %q for %s: %+v", c.msg, c.field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
