package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type statusPayload struct {
	Status string `validate:"omitempty,articlestatus"`
	Kind   string `validate:"required,categorytype"`
}

func TestCustomValidations(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(statusPayload{Status: "DRAFT", Kind: "ARTICLE"}))
	assert.NoError(t, v.Validate(statusPayload{Status: "", Kind: "PRODUCT"}))

	err := v.Validate(statusPayload{Status: "LIVE", Kind: "ARTICLE"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DRAFT or PUBLISHED")

	err = v.Validate(statusPayload{Status: "DRAFT", Kind: "OTHER"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ARTICLE or PRODUCT")
}
