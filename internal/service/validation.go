package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so field errors match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs tag validation and converts failures into an aggregated ErrInvalidInput.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := make([]FieldError, 0, len(verrs))
	for _, v := range verrs {
		fe = append(fe, FieldError{Field: v.Field(), Message: describe(v)})
	}
	return NewInvalidInputError(fe)
}

func describe(v validator.FieldError) string {
	switch v.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return "must be > " + v.Param()
	case "gte":
		return "must be >= " + v.Param()
	case "lte":
		return "must be <= " + v.Param()
	case "max":
		return "length must be <= " + v.Param()
	default:
		return fmt.Sprintf("failed %q check", v.Tag())
	}
}

func validateID(field string, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: field, Message: "must be > 0"}})
	}
	return nil
}

// validateWindow checks the player id and lookback of a windowed query,
// reporting both fields when both are bad.
func validateWindow(playerID int64, hours int) error {
	var ferrs []FieldError
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if hours <= 0 {
		ferrs = append(ferrs, FieldError{Field: "hours", Message: "must be > 0"})
	}
	return NewInvalidInputError(ferrs)
}
