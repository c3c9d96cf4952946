package schemas

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `{
	"type": "object",
	"properties": {
		"pain_points": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 1,
			"maxItems": 3
		},
		"confidence": {"type": "integer", "minimum": 0, "maximum": 100}
	},
	"required": ["pain_points"],
	"additionalProperties": false
}`

func TestValidateStringAccepts(t *testing.T) {
	doc := `{"pain_points": ["manual reporting"], "confidence": 75}`
	if err := ValidateString(testSchema, doc); err != nil {
		t.Errorf("Expected valid document, got: %v", err)
	}
}

func TestValidateStringRejectsMissingRequired(t *testing.T) {
	err := ValidateString(testSchema, `{"confidence": 75}`)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if len(ve.Errors) == 0 {
		t.Error("Expected at least one field error")
	}
	if !strings.Contains(ve.Error(), "pain_points") {
		t.Errorf("Error should name the missing field: %s", ve.Error())
	}
}

func TestValidateStringRejectsExtraProperties(t *testing.T) {
	doc := `{"pain_points": ["x"], "surprise": true}`
	if err := ValidateString(testSchema, doc); err == nil {
		t.Error("Expected error for additional property")
	}
}

func TestValidateStringMalformedDocument(t *testing.T) {
	err := ValidateString(testSchema, `{not json`)
	if err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Error("Malformed JSON is not a validation failure")
	}
}
