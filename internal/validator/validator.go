package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground validator
type Validator struct {
	validate *validator.Validate
}

// New creates a new validator
func New() *Validator {
	v := validator.New()
	RegisterCustom(v)

	return &Validator{
		validate: v,
	}
}

// RegisterCustom registers the content enum validations on an existing
// validator instance, such as gin's binding engine.
func RegisterCustom(v *validator.Validate) {
	v.RegisterValidation("articlestatus", validateArticleStatus)
	v.RegisterValidation("productstatus", validateProductStatus)
	v.RegisterValidation("categorytype", validateCategoryType)
}

func validateArticleStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || s == "DRAFT" || s == "PUBLISHED"
}

func validateProductStatus(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || s == "ACTIVE" || s == "INACTIVE"
}

func validateCategoryType(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "ARTICLE" || s == "PRODUCT"
}

// Validate validates a struct
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError formats validation errors into a readable message
func (v *Validator) formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, v.formatFieldError(e))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
	}
	return err
}

// formatFieldError formats a single field error
func (v *Validator) formatFieldError(e validator.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "articlestatus":
		return fmt.Sprintf("%s must be DRAFT or PUBLISHED", field)
	case "productstatus":
		return fmt.Sprintf("%s must be ACTIVE or INACTIVE", field)
	case "categorytype":
		return fmt.Sprintf("%s must be ARTICLE or PRODUCT", field)
	default:
		return fmt.Sprintf("%s failed validation for %s", field, tag)
	}
}

// ValidateStruct is a helper function for quick validation
func ValidateStruct(s interface{}) error {
	v := New()
	return v.Validate(s)
}
