package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Mirrors the checkout form shape.
type testCheckoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includePhone bool, includeAddress bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["name"] = "Maria Silva"
			}
			if includePhone {
				reqMap["phone"] = "+5511999990000"
			}
			if includeAddress {
				reqMap["address"] = "Rua das Flores, 123"
			}

			allFieldsPresent := includeName && includePhone && includeAddress

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testCheckoutRequest
			err := DecodeAndValidate(req, &testReq)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestValidationErrorsAreFormatted(t *testing.T) {
	reqMap := map[string]interface{}{
		"name":    "Maria Silva",
		"email":   "invalid-email",
		"phone":   "+5511999990000",
		"address": "Rua das Flores, 123",
	}

	reqBody, _ := json.Marshal(reqMap)
	req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	var testReq testCheckoutRequest
	err := DecodeAndValidate(req, &testReq)
	if err == nil {
		t.Fatal("expected validation to fail for invalid email")
	}

	formatted := FormatValidationErrors(err)
	if len(formatted) == 0 {
		t.Fatal("expected formatted validation errors")
	}
	if formatted[0].Field != "Email" {
		t.Errorf("expected Email field error, got %q", formatted[0].Field)
	}
	if formatted[0].Message == "" {
		t.Error("expected a human-readable message")
	}
}

func TestInvalidJSONIsRejected(t *testing.T) {
	req := httptest.NewRequest("POST", "/test", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	var testReq testCheckoutRequest
	if err := DecodeAndValidate(req, &testReq); err == nil {
		t.Fatal("expected decode error for malformed JSON")
	}
}
