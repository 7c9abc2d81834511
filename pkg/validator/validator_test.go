package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type titled struct {
	Title string `validate:"required,notblank"`
	Max   *int   `validate:"omitempty,min=1"`
}

func TestValidate_NotBlank(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(titled{Title: "Onboarding study"}))
	assert.Error(t, v.Validate(titled{Title: "   "}))
	assert.Error(t, v.Validate(titled{}))
}

func TestValidate_Min(t *testing.T) {
	v := New()
	zero := 0

	assert.Error(t, v.Validate(titled{Title: "x", Max: &zero}))
}
