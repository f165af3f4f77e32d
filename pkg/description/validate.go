package description

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"reflectometry/pkg/serrors"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report field names as they appear in the YAML document.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}

			return name
		})
	})

	return validate
}

// check validates a DTO and converts validator errors into a validation
// error listing every offending field.
func check(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return serrors.Wrap(serrors.ErrValidation, err, "invalid description")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}

	return serrors.With(serrors.ErrValidation, "invalid description: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), strings.SplitN(fe.Namespace(), ".", 2)[0]+".")
	switch fe.Tag() {
	case "required", "required_if":
		return field + " is required"
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "min":
		return field + " needs at least " + fe.Param() + " entries"
	case "gt", "gte":
		return field + " must be greater than " + fe.Param()
	default:
		return field + " failed " + fe.Tag()
	}
}
