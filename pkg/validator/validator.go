package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
	Message     string
}

var validate = validator.New()

func init() {
	// Register custom validation for UUID
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			element := ErrorResponse{
				FailedField: err.StructNamespace(),
				Tag:         err.Tag(),
				Value:       err.Param(),
			}
			element.Message = messageFor(err)
			errors = append(errors, &element)
		}
	}
	return errors
}

// messageFor renders a human readable message per failed rule, in the shape
// the API's error envelope expects.
func messageFor(err validator.FieldError) string {
	field := fieldName(err)
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s.", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters.", field, err.Param())
	case "uuid_required":
		return fmt.Sprintf("%s is required.", field)
	default:
		return fmt.Sprintf("%s failed on rule '%s'.", field, err.Tag())
	}
}

func fieldName(err validator.FieldError) string {
	// StructNamespace looks like "CreatePurchaseRequest.Items[0].Quantity";
	// drop the type prefix for readability.
	ns := err.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
