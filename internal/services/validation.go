package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"budzet/internal/core"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator adds maxbytes, a length cap counted in bytes rather than
// runes, for inputs with byte limits such as bcrypt passwords.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(fmt.Sprintf("register maxbytes validation: %v", err))
	}
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// validateStruct runs struct tag validation and folds failures into a
// single core.ErrValidation naming every offending field.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			problems = append(problems, field+" is required")
		case "max":
			problems = append(problems, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "maxbytes":
			problems = append(problems, fmt.Sprintf("%s must be at most %s bytes", field, fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", core.ErrValidation, strings.Join(problems, ", "))
}
