package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError un campo que no pasó la validación.
type FieldError struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Códigos de producto y rack: sin espacios internos ni en los extremos.
	_ = validate.RegisterValidation("code", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && !strings.ContainsAny(s, " \t\r\n")
	})
}

// ValidateStruct valida data según sus tags `validate`. nil = válido.
func ValidateStruct(data interface{}) []*FieldError {
	var out []*FieldError
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*FieldError{{FailedField: "body", Tag: "invalid"}}
	}
	for _, e := range verrs {
		out = append(out, &FieldError{
			FailedField: e.StructNamespace(),
			Tag:         e.Tag(),
			Value:       e.Param(),
		})
	}
	return out
}

// Message resume los errores en una línea para dto.ErrorResponse.
func Message(errs []*FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Value != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", e.FailedField, e.Tag, e.Value))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", e.FailedField, e.Tag))
	}
	return strings.Join(parts, "; ")
}
