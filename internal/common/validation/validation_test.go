package validation_test

import (
	"errors"
	"strings"
	"testing"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
	"github.com/kariua-parish/parish-site/internal/common/validation"
)

type samplePayload struct {
	Name      string `json:"name" validate:"required,notblank,max=10"`
	Intention string `json:"intention" validate:"required,notblank"`
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	if err := v.Struct(samplePayload{Name: "Maria", Intention: "For my family"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidator_FieldDetails(t *testing.T) {
	v := validation.New()

	testCases := []struct {
		name        string
		payload     samplePayload
		field       string
		wantMessage string
	}{
		{"empty name", samplePayload{Name: "", Intention: "x"}, "name", "name is required"},
		{"blank intention", samplePayload{Name: "Jo", Intention: "   "}, "intention", "intention is required"},
		{"long name", samplePayload{Name: strings.Repeat("a", 11), Intention: "x"}, "name", "name must be at most 10 characters"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.payload)
			if !errors.Is(err, commonerrors.ErrValidationFailed) {
				t.Fatalf("expected ErrValidationFailed, got %v", err)
			}

			details := validation.FieldDetails(err)
			if got := details[tc.field]; got != tc.wantMessage {
				t.Errorf("expected %q for %s, got %v", tc.wantMessage, tc.field, got)
			}
		})
	}
}

func TestValidator_ReportsEveryField(t *testing.T) {
	v := validation.New()

	err := v.Struct(samplePayload{})
	details := validation.FieldDetails(err)

	if len(details) != 2 {
		t.Errorf("expected details for 2 fields, got %v", details)
	}
}

func TestMalformed(t *testing.T) {
	err := validation.Malformed(errors.New("unexpected EOF"))

	if !errors.Is(err, commonerrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if _, ok := validation.FieldDetails(err)["body"]; !ok {
		t.Error("expected body detail")
	}
}
