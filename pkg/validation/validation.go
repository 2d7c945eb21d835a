// Package validation wraps go-playground/validator for request structs.
// Messages name fields by their JSON key, the name the caller sent.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "claimguard/pkg/domain-errors"
)

var std = build()

func build() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// RegisterString adds a string-field tag. Call it from package init; it is
// not safe alongside Validate.
func RegisterString(tag string, fn func(string) bool) {
	if err := std.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Validate checks req's struct tags and reports the first failure as a
// CodeValidation error.
func Validate(req any) error {
	if err := std.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, Message(err))
	}
	return nil
}

// Message renders the first field failure for a person.
func Message(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid request body"
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.ActualTag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "service_description":
		return field + " is not a recognized service"
	default:
		return field + " is invalid"
	}
}
