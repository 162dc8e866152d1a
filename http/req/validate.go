package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/switchback"
)

// fieldNameTags are the struct tags a field's reported name is read from, in order.
var fieldNameTags = []string{"json", "yaml", "schema"}

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator supporting the "enum" rule
// and naming fields as they appear in request bodies, route tables and query strings.
func newValidator() validator {
	v := v10.New()
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(fieldName)

	return validator{v}
}

// fieldName returns the first name set by one of fieldNameTags, or blank.
func fieldName(field reflect.StructField) string {
	for _, tag := range fieldNameTags {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags,
// returning every broken rule as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	out := make(ValidationErrors, 0, len(errs))
	for _, fe := range errs {
		out = append(out, newValidationError(fe))
	}

	return out
}

// newValidationError describes fe relative to the validated struct,
// e.g., "routes[0].method" instead of "Table.routes[0].method".
func newValidationError(fe v10.FieldError) ValidationError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}

	return ValidationError{
		Field: field,
		Got:   fe.Value(),
		Rule:  rule + "; " + fe.Type().String(),
	}
}

// validateEnumerable validates whether field is a valid switchback.Enumerable
// or a non-empty slice of them.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return validEnum(field)
	}

	if field.Len() == 0 {
		return false
	}

	for i := range field.Len() {
		if !validEnum(field.Index(i)) {
			return false
		}
	}

	return true
}

func validEnum(item reflect.Value) bool {
	enum, ok := item.Interface().(switchback.Enumerable)
	return ok && enum.Valid() == nil
}
