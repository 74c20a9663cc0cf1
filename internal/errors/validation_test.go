package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("exercise_id", "must be unique across the content tree", "letter-position")

	if err.Field != "exercise_id" {
		t.Errorf("Expected field to be 'exercise_id', got '%s'", err.Field)
	}

	if err.Message != "must be unique across the content tree" {
		t.Errorf("Unexpected message: '%s'", err.Message)
	}

	expected := "validation error on field 'exercise_id': must be unique across the content tree"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("type", "must be a supported exercise variant", nil))
	expected := "validation failed: type must be a supported exercise variant"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("duration", "must be between 1 and 600 seconds", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("category_id", "does not exist in this exercise", "category_ref", "neuter")

	if err.Rule != "category_ref" {
		t.Errorf("Expected rule to be 'category_ref', got '%s'", err.Rule)
	}

	if err.Field != "category_id" {
		t.Errorf("Expected field to be 'category_id', got '%s'", err.Field)
	}
}
