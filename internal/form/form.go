// Package form validates console input before anything is sent to the API.
//
// Rules live in `validate` struct tags. A `msg` tag replaces the translated
// message for every rule on that field, the way the admin forms show a
// single sentence per field ("Name is required"). A `msg_<rule>` tag, e.g.
// `msg_max`, wins over `msg` for that one rule.
package form

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const choiceTag = "choice"

// Errors maps a field's JSON name to its message.
type Errors struct {
	Fields map[string]string
}

func (e *Errors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for name, or "".
func (e *Errors) Field(name string) string {
	return e.Fields[name]
}

// Choices are the runtime option lists checked by the `choice` tag, keyed
// by JSON field name.
type Choices map[string][]string

type choicesKey struct{}

// WithChoices attaches option lists to ctx for Validate.
func WithChoices(ctx context.Context, c Choices) context.Context {
	return context.WithValue(ctx, choicesKey{}, c)
}

// Validator wraps go-playground/validator with English messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New builds a Validator.
func New() *Validator {
	validate := validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidationCtx(choiceTag, validateChoice)
	registerTranslation(validate, translator, choiceTag, "{0} must be one of the available options")

	return &Validator{validate: validate, translator: translator}
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// validateChoice passes when the value is empty (required reports that)
// or listed in the field's Choices. A field without choices passes.
func validateChoice(ctx context.Context, fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	choices, _ := ctx.Value(choicesKey{}).(Choices)
	options, ok := choices[fl.FieldName()]
	if !ok {
		return true
	}
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// Validate checks a struct (or pointer to one). It returns *Errors on
// rule violations, nil otherwise.
func (v *Validator) Validate(ctx context.Context, s interface{}) error {
	err := v.validate.StructCtx(ctx, s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	out := &Errors{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		msg := fe.Translate(v.translator)
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if override := sf.Tag.Get("msg_" + fe.Tag()); override != "" {
				msg = override
			} else if override := sf.Tag.Get("msg"); override != "" {
				msg = override
			}
		}
		out.Fields[fe.Field()] = msg
	}
	return out
}
