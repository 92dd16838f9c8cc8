package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// passwordRegex accepts any printable password between 8 and 72 characters.
// The upper bound matches the bcrypt input limit.
var passwordRegex = regexp.MustCompile(`^.{8,72}$`)

// Validator validates structs tagged with `validate` rules.
type Validator interface {
	Validate(data any) error
}

// V10ValidationError carries field-level validation messages keyed by the
// snake-cased field name.
type V10ValidationError struct {
	fields map[string]string
}

// Error implements the error interface.
func (ve *V10ValidationError) Error() string {
	msgs := make([]string, 0, len(ve.fields))
	for _, msg := range ve.fields {
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "; ")
}

// Fields returns the per-field validation messages.
func (ve *V10ValidationError) Fields() map[string]string {
	return ve.fields
}

// V10Validator is a Validator backed by go-playground/validator v10.
type V10Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewV10Validator builds a validator with English translations and the
// custom password rule registered.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	trans, found := uni.GetTranslator("en")
	if !found {
		return nil, errors.New("translator not found")
	}

	if err := entrans.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return toLowerSnake(fld.Name)
		}

		return name
	})

	if err := validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return passwordRegex.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	err := validate.RegisterTranslation("password", trans,
		func(ut ut.Translator) error {
			return ut.Add("password", "{0} must be between 8 and 72 characters", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("password", fe.Field())

			return t
		},
	)
	if err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, trans: trans}, nil
}

// Validate checks data against its struct tags. It returns a
// *V10ValidationError when one or more rules fail.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[toLowerSnake(fe.Field())] = fe.Translate(v.trans)
	}

	return &V10ValidationError{fields: fields}
}

func toLowerSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
