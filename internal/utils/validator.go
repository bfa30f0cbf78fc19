// internal/utils/validator.go
package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vanleybasso/ladiversite/internal/models"
)

var validate *validator.Validate

var cepPattern = regexp.MustCompile(`^[0-9]{8}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("cep", validateCEP)
	validate.RegisterValidation("productstatus", validateProductStatus)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// A CEP is exactly eight digits, no separators.
func validateCEP(fl validator.FieldLevel) bool {
	return cepPattern.MatchString(fl.Field().String())
}

func validateProductStatus(fl validator.FieldLevel) bool {
	switch models.ProductStatus(fl.Field().String()) {
	case models.ProductStatusInStock, models.ProductStatusNoStock:
		return true
	}
	return false
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "cep":
		return "CEP must have exactly 8 digits"
	case "productstatus":
		return "status must be IN STOCK or NO STOCK"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
