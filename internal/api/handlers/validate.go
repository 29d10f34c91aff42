package handlers

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/validator/v10"
)

var (
	postcodePattern = regexp.MustCompile(`^\d{5}$`)
	frPhonePattern  = regexp.MustCompile(`^((\+33|0)[1-9])(\d{2}){4}$`)
)

// validate checks request payloads against their struct tags. It knows two
// extra rules: postcode (five digits) and frphone (French phone number).
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "postcode", func(fl validator.FieldLevel) bool {
		return postcodePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "frphone", func(fl validator.FieldLevel) bool {
		return frPhonePattern.MatchString(strings.ReplaceAll(fl.Field().String(), " ", ""))
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// validationError converts validator failures into a 422 response that
// points at the offending body fields.
func validationError(prefix string, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return huma.Error422UnprocessableEntity("validation failed: " + err.Error())
	}

	details := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, &huma.ErrorDetail{
			Location: "body." + prefix + fe.Field(),
			Message:  ruleMessage(fe),
			Value:    fe.Value(),
		})
	}
	return huma.Error422UnprocessableEntity("validation failed", details...)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "postcode":
		return "must be a 5-digit postal code"
	case "frphone":
		return "must be a French phone number"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
