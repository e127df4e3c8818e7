package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

type testPayload struct {
	Name   string `json:"name" validate:"required,max=32"`
	Series string `json:"series" validate:"required"`
	Number int    `json:"car_number" validate:"gt=0"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := testPayload{
		Name:   "Apex Racing",
		Series: "GT3",
		Number: 44,
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := testPayload{
		Name:   "",
		Series: "",
		Number: 0,
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d", len(vErrs))
	}

	foundNumber := false
	for _, v := range vErrs {
		if v.Field == "car_number" && v.Tag == "gt" && v.Param == "0" {
			foundNumber = true
		}
	}

	if !foundNumber {
		t.Fatal("expected car_number field to be present in validation errors")
	}
}

func TestMerge(t *testing.T) {
	if err := Merge(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	extra := ValidationError{Field: "to_id", Tag: "nefield", Param: "from_id"}
	err := Merge(nil, extra)
	vErrs, ok := err.(ValidationErrors)
	if !ok || len(vErrs) != 1 {
		t.Fatalf("expected one validation error, got %v", err)
	}

	base := ValidateStruct(testPayload{Series: "GT3", Number: 1})
	err = Merge(base, extra)
	vErrs, ok = err.(ValidationErrors)
	if !ok || len(vErrs) != 2 {
		t.Fatalf("expected two validation errors, got %v", err)
	}

	plain := errors.New("boom")
	if got := Merge(plain, extra); got != plain {
		t.Fatalf("expected non validation error to pass through, got %v", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("series_code", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == "F1"
	})
	if err != nil {
		t.Fatalf("register validation: %v", err)
	}

	type custom struct {
		Value string `validate:"series_code"`
	}

	if err := ValidateStruct(custom{Value: "F1"}); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}
	if err := ValidateStruct(custom{Value: "F2"}); err == nil {
		t.Fatal("expected validation to fail for non-matching value")
	}
}

func TestNotBlank(t *testing.T) {
	type named struct {
		Name string `json:"name" validate:"notblank"`
	}

	if err := ValidateStruct(named{Name: "Apex"}); err != nil {
		t.Fatalf("expected validation to pass, got %v", err)
	}

	err := ValidateStruct(named{Name: " \t"})
	vErrs, ok := err.(ValidationErrors)
	if !ok || len(vErrs) != 1 || vErrs[0].Tag != "notblank" || vErrs[0].Field != "name" {
		t.Fatalf("expected notblank failure on name, got %v", err)
	}
}
