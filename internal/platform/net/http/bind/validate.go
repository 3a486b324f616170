// Package bind decodes request bodies into typed inputs and validates them
// failures come back as project errors carrying the offending field
package bind

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	perr "tgcheck/internal/platform/errors"
	"tgcheck/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type validatorSvc struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

func get() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		// messages name fields the way clients send them
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		short(v, trans, "min", "{0} must be at least {1}")
		short(v, trans, "max", "{0} must be at most {1}")
		registerPhone(v, trans)

		vSvc = &validatorSvc{v: v, trans: trans}
	})
	return vSvc
}

// validate runs struct tags on dst and returns a Validation error naming the first bad field
func validate(dst any) error {
	err := get().v.Struct(dst)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.InvalidArgf("validation error")
	}
	field, msg := FieldMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FieldMessage returns the first failing field and its translated message
func FieldMessage(err error) (field, message string) {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(get().trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// phone only requires a digit; normalization happens in the phonelist package
func registerPhone(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), unicode.IsDigit) >= 0
	})
	short(v, trans, "phone", "{0} must contain a phone number")
}
