package validatorx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v    *gpvalidator.Validate
	once sync.Once
)

// Init initializes the validator singleton (idempotent, safe for concurrent use)
func Init() {
	once.Do(build)
}

func build() {
	v = gpvalidator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("citystate", validateCityState)
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	Init()
	return v.Struct(s)
}

// FieldErrors flattens a validation error into form field -> message. Errors
// that are not validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs gpvalidator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, exists := out[fe.Field()]; exists {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// validateCityState accepts "City, State" style input.
func validateCityState(fl gpvalidator.FieldLevel) bool {
	return strings.Contains(fl.Field().String(), ",")
}

func message(fe gpvalidator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "numeric":
		return "Field must contain only digits."
	case "eqfield":
		return "Passwords must match"
	case "citystate":
		return "Please only input your CITY & STATE separated by a comma."
	case "len":
		return fmt.Sprintf("Field must be exactly %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Field cannot be longer than %s characters.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Field must be at least %s characters long.", fe.Param())
		}
		return fmt.Sprintf("Number must be at least %s.", fe.Param())
	default:
		return "Invalid value."
	}
}
