// Package bind decodes and validates request payloads
// validation messages use json field names and english translations
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "postpilot/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps a JSON request body
const MaxBody = 1 << 20

type engine struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	eng  engine
)

func get() engine {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		_ = entrans.RegisterDefaultTranslations(v, trans)
		_ = v.RegisterValidation("li_urn", func(fl validator.FieldLevel) bool {
			return strings.HasPrefix(fl.Field().String(), "urn:li:")
		})

		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")
		translate(v, trans, "li_urn", "{0} must be a LinkedIn urn (urn:li:...)")

		eng = engine{v: v, trans: trans}
	})
	return eng
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// Validate checks v's validate tags; the first failure comes back as a validation error carrying its field
func Validate(v any) error {
	e := get()
	err := e.v.Struct(v)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if errors.As(err, &fes) && len(fes) > 0 {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, fes[0].Translate(e.trans)), fes[0].Field())
	}
	return perr.Wrap(err, perr.ErrorCodeValidation, "validation failed")
}

// ParseJSON decodes one JSON object into T, rejecting unknown fields and trailing data, then validates it
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		var zero T
		if errors.Is(err, io.EOF) {
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		var zero T
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}
