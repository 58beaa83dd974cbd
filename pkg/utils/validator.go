package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs the validate tags on s.
func ValidateStruct(s interface{}) error {
	return getValidator().Struct(s)
}

// FirstFieldError returns "<field>.<tag>" for the first failed rule, using
// the form name of the field.
func FirstFieldError(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", false
	}
	return verrs[0].Field() + "." + verrs[0].Tag(), true
}

// ValidationMessage maps the first failed rule to a message from messages,
// falling back to fallback.
func ValidationMessage(err error, messages map[string]string, fallback string) string {
	key, ok := FirstFieldError(err)
	if !ok {
		return fallback
	}
	if msg, ok := messages[key]; ok {
		return msg
	}
	return fallback
}
