package errors

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationError(t *testing.T) {
	// Test NewValidationError
	err := NewValidationError("test_field", "test message", "test_value")

	if err.Field != "test_field" {
		t.Errorf("Expected field to be 'test_field', got '%s'", err.Field)
	}

	if err.Message != "test message" {
		t.Errorf("Expected message to be 'test message', got '%s'", err.Message)
	}

	if err.Value != "test_value" {
		t.Errorf("Expected value to be 'test_value', got '%v'", err.Value)
	}

	// Test Error method
	expected := "validation error on field 'test_field': test message"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	// Test empty ValidationErrors
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	// Test single ValidationError
	errs = append(errs, *NewValidationError("field1", "message1", nil))
	expected := "validation failed: field1 message1"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	// Test multiple ValidationErrors
	errs = append(errs, *NewValidationError("field2", "message2", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("test_field", "test message", "required", "test_value")

	if err.Rule != "required" {
		t.Errorf("Expected rule to be 'required', got '%s'", err.Rule)
	}

	if err.Field != "test_field" {
		t.Errorf("Expected field to be 'test_field', got '%s'", err.Field)
	}
}

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"eqfield=Password"`
}

type deck struct {
	Cards []card `validate:"min=1,dive"`
}

type card struct {
	Question string `validate:"required"`
}

func TestToValidationErrors(t *testing.T) {
	v := validator.New()

	err := v.Struct(signupForm{Email: "not-an-email", Password: "abc", Confirm: "abd"})
	errs := ToValidationErrors(err)

	if len(errs) != 3 {
		t.Fatalf("Expected 3 errors, got %d: %v", len(errs), errs)
	}

	expected := map[string]string{
		"Email":    "must be a valid email address",
		"Password": "must be at least 6 characters",
		"Confirm":  "must match Password",
	}
	for _, e := range errs {
		if expected[e.Field] != e.Message {
			t.Errorf("Field %s: expected message '%s', got '%s'", e.Field, expected[e.Field], e.Message)
		}
	}
}

func TestToValidationErrors_NestedPaths(t *testing.T) {
	v := validator.New()

	errs := ToValidationErrors(v.Struct(deck{Cards: []card{{Question: "ok"}, {}}}))
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(errs))
	}
	if errs[0].Field != "Cards[1].Question" {
		t.Errorf("Expected field 'Cards[1].Question', got '%s'", errs[0].Field)
	}

	errs = ToValidationErrors(v.Struct(deck{}))
	if len(errs) != 1 || errs[0].Message != "must contain at least 1 items" {
		t.Errorf("Unexpected errors for empty deck: %v", errs)
	}
}

func TestToValidationErrors_PassThrough(t *testing.T) {
	original := ValidationErrors{*NewValidationError("email", "is already registered", "a@x.com")}

	errs := ToValidationErrors(fmt.Errorf("signup: %w", original))
	if len(errs) != 1 || errs[0].Message != "is already registered" {
		t.Errorf("Expected wrapped errors to pass through, got %v", errs)
	}

	if ToValidationErrors(fmt.Errorf("unrelated")) != nil {
		t.Error("Expected nil for unrelated errors")
	}
}

type credentialsForm struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

func TestToValidationErrors_RedactsSecrets(t *testing.T) {
	v := validator.New()

	errs := ToValidationErrors(v.Struct(credentialsForm{Email: "bad", Password: "hunt3", ConfirmPassword: "hunter2x"}))
	if len(errs) != 3 {
		t.Fatalf("Expected 3 errors, got %d: %v", len(errs), errs)
	}
	for _, e := range errs {
		switch e.Field {
		case "Password", "ConfirmPassword":
			if e.Value != nil {
				t.Errorf("Expected %s value to be dropped, got %v", e.Field, e.Value)
			}
		case "Email":
			if e.Value != "bad" {
				t.Errorf("Expected email value to be kept, got %v", e.Value)
			}
		}
	}

	wrapped := ValidationErrors{*NewValidationError("confirm_password", "must match password", "hunter2x")}
	errs = ToValidationErrors(fmt.Errorf("signup: %w", wrapped))
	if errs[0].Value != nil {
		t.Errorf("Expected passed-through secret to be dropped, got %v", errs[0].Value)
	}
	if wrapped[0].Value != "hunter2x" {
		t.Error("Expected the original errors to be left untouched")
	}
}

func TestSensitiveField(t *testing.T) {
	cases := map[string]bool{
		"password":             true,
		"confirm_password":     true,
		"credentials.api_key":  true,
		"Token":                true,
		"email":                false,
		"key_topics[0].topic":  false,
		"flashcards[1].answer": false,
	}
	for field, want := range cases {
		if got := SensitiveField(field); got != want {
			t.Errorf("SensitiveField(%q) = %v, want %v", field, got, want)
		}
	}
}
