package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"lg/body-progress-go-api/internal/metrics"
)

// FieldError names one rejected input field by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any computation or persistence when
// profile input is rejected.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and converts failures into a
// *ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// checkBMI rejects a weight/height pair that does not produce a finite BMI.
// The struct tags only check sign, so +Inf and overflowing ratios get here.
func checkBMI(weight, height float64) error {
	_, err := metrics.BMI(weight, height)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, metrics.ErrInvalidHeight):
		return &ValidationError{Fields: []FieldError{{Field: "height", Message: "must be a finite number greater than 0"}}}
	case errors.Is(err, metrics.ErrInvalidWeight):
		return &ValidationError{Fields: []FieldError{{Field: "weight", Message: "must be a finite number greater than 0"}}}
	default:
		return &ValidationError{Fields: []FieldError{{Field: "weight", Message: "is out of range for the given height"}}}
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
