// Package validate checks request bodies with struct tags and normalises
// phone numbers.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"textile-backend/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates s and reports the first failing field as a validation error.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.New(apperr.KindValidation, "Invalid request", err)
	}
	return apperr.New(apperr.KindValidation, message(verrs[0]), err)
}

// Fields maps every failing field to its tag.
func Fields(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

// Phone parses number for region and returns it in E.164 form.
func Phone(number, region string) (string, error) {
	p, err := libphonenumber.Parse(number, region)
	if err != nil {
		return "", apperr.New(apperr.KindValidation, "phone is not a valid phone number", err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", apperr.Validation("phone is not a valid phone number")
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
