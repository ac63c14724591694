package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title  string  `json:"title" validate:"required,min=2"`
	Slug   string  `json:"slug" validate:"omitempty,slug"`
	Email  string  `json:"email" validate:"omitempty,email"`
	Status string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Date   *string `json:"preferred_date" validate:"omitempty,date"`
	Hidden string  `json:"-" validate:"omitempty,max=1"`
}

func TestValidate_Valid(t *testing.T) {
	date := "2026-11-02"
	err := NewValidator().Validate(&sample{Title: "Hip", Slug: "hip-replacement", Status: "draft", Date: &date})
	assert.NoError(t, err)
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()
	date := "02/11/2026"

	err := v.Validate(&sample{Title: "", Slug: "Bad Slug", Email: "nope", Status: "live", Date: &date})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "title is required", errs["title"])
	assert.Equal(t, "slug may only contain lowercase letters, digits and single hyphens", errs["slug"])
	assert.Equal(t, "email must be a valid email address", errs["email"])
	assert.Equal(t, "status must be one of: draft, published, archived", errs["status"])
	assert.Equal(t, "preferred_date must be a date in YYYY-MM-DD format", errs["preferred_date"])
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, NewValidator().FormatValidationErrors(assert.AnError))
}
