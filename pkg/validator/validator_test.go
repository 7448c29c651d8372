package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type seekInput struct {
	Fraction *float64 `json:"fraction" validate:"required,gte=0,lte=1"`
}

type submitInput struct {
	InputText string `json:"input_text" validate:"required,max=2048"`
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	half := 0.5
	errs, ok := v.Validate(seekInput{Fraction: &half})
	assert.True(t, ok)
	assert.Empty(t, errs)

	tooMuch := 1.5
	errs, ok = v.Validate(seekInput{Fraction: &tooMuch})
	assert.False(t, ok)
	assert.Equal(t, []ValidationError{{
		Field:   "fraction",
		Code:    "LTE",
		Message: "fraction must be less than or equal to 1",
	}}, errs)

	errs, ok = v.Validate(seekInput{})
	assert.False(t, ok)
	assert.Equal(t, "REQUIRED", errs[0].Code)

	errs, ok = v.Validate(submitInput{})
	assert.False(t, ok)
	assert.Equal(t, "input_text", errs[0].Field)
	assert.Equal(t, "input_text is required", errs[0].Message)
}
