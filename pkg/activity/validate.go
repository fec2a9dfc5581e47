package activity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned for form input that must be corrected before
// it can become an activity.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "activity: invalid input: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// Validate checks form input submitted by a user. The title is required.
func Validate(in Input) error {
	var fields []FieldError
	if strings.TrimSpace(in.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "is required"})
	}
	fields = append(fields, structErrors(in)...)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ValidatePatch checks the fields a patch sets. A set title may not be blank.
func ValidatePatch(p Patch) error {
	var fields []FieldError
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "is required"})
	}
	probe := Input{Coordinates: p.Coordinates}
	if p.Category != nil {
		probe.Category = *p.Category
	}
	if p.Priority != nil {
		probe.Priority = *p.Priority
	}
	if p.Cost != nil {
		probe.Cost = *p.Cost
	}
	if p.Duration != nil {
		probe.Duration = *p.Duration
	}
	fields = append(fields, structErrors(probe)...)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func structErrors(in Input) []FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "input", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
