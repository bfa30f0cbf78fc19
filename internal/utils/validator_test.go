// internal/utils/validator_test.go
package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type cepFixture struct {
	CEP string `validate:"required,cep"`
}

type statusFixture struct {
	Status string `validate:"required,productstatus"`
}

func TestCEPValidation(t *testing.T) {
	valid := []string{"01310100", "00000000", "99999999"}
	for _, cep := range valid {
		assert.NoError(t, ValidateStruct(&cepFixture{CEP: cep}), "cep %q", cep)
	}

	invalid := []string{"0131010", "013101000", "01310-100", "abcdefgh", " 1310100"}
	for _, cep := range invalid {
		assert.Error(t, ValidateStruct(&cepFixture{CEP: cep}), "cep %q", cep)
	}
}

func TestProductStatusValidation(t *testing.T) {
	assert.NoError(t, ValidateStruct(&statusFixture{Status: "IN STOCK"}))
	assert.NoError(t, ValidateStruct(&statusFixture{Status: "NO STOCK"}))

	assert.Error(t, ValidateStruct(&statusFixture{Status: "in stock"}))
	assert.Error(t, ValidateStruct(&statusFixture{Status: "SOLD OUT"}))
}

func TestGetValidationErrorsUnwrapsWrappedError(t *testing.T) {
	err := ValidateStruct(&cepFixture{CEP: "123"})
	wrapped := fmt.Errorf("validation failed: %w", err)

	errs := GetValidationErrors(wrapped)
	assert.Len(t, errs, 1)
	assert.Equal(t, "cep", errs[0].Field)
	assert.Equal(t, "CEP must have exactly 8 digits", errs[0].Message)
}

func TestGetValidationErrorsNonValidationError(t *testing.T) {
	assert.Empty(t, GetValidationErrors(fmt.Errorf("database down")))
	assert.Empty(t, GetValidationErrors(nil))
}
