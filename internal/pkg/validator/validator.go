// Package validator wraps go-playground/validator with English error messages.
// Error messages contain the field path, for example: "packages[0].machineName" is a required field.
package validator

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const nestedName = "__nested__"

// Rule is a custom validation rule.
type Rule struct {
	Tag          string
	Func         validator.FuncCtx
	ErrorMsg     string
	ErrorMsgFunc func(fe validator.FieldError) string
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
	rules      map[string]Rule
}

var machineNameRegexp = regexp.MustCompile(`^[a-z0-9_]+$`)

func New(rules ...Rule) *Validator {
	v := &Validator{validate: validator.New(), rules: make(map[string]Rule)}

	// Register default EN translator
	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(v.validate, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}
	v.translator = translator

	// Use YAML or JSON field name in error messages.
	// Anonymous fields are removed from the error namespace.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return nestedName
		}
		for _, tag := range []string{"yaml", "json", "configKey", "mapstructure"} {
			if name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	defaultRules := []Rule{
		{
			Tag: "machinename",
			Func: func(ctx context.Context, fl validator.FieldLevel) bool {
				return machineNameRegexp.MatchString(fl.Field().String())
			},
			ErrorMsg: "can only contain lowercase alphanumeric characters and underscore",
		},
	}
	for _, rule := range append(defaultRules, rules...) {
		v.registerRule(rule)
	}

	return v
}

func (v *Validator) registerRule(rule Rule) {
	if err := v.validate.RegisterValidationCtx(rule.Tag, rule.Func); err != nil {
		panic(err)
	}
	v.rules[rule.Tag] = rule
}

// Validate a struct or a slice of structs.
func (v *Validator) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

// ValidateCtx validates the value, structs are validated by their tags, other values by the tag argument.
// The namespace is used as a prefix of the field path in error messages.
func (v *Validator) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	var err error
	isStruct := false
	if rv := reflect.Indirect(reflect.ValueOf(value)); rv.Kind() == reflect.Struct {
		isStruct = true
		err = v.validate.StructCtx(ctx, value)
	} else {
		err = v.validate.VarCtx(ctx, value, tag)
	}

	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	return v.processErrors(validationErrs, isStruct, namespace)
}

func (v *Validator) processErrors(errs validator.ValidationErrors, isStruct bool, namespace string) error {
	result := errors.NewMultiError()
	for _, e := range errs {
		path := fieldPath(e.Namespace(), isStruct)
		if namespace != "" {
			path = strings.TrimSuffix(namespace+"."+path, ".")
		}

		msg := v.message(e)
		if path != "" {
			msg = fmt.Sprintf(`"%s" %s`, path, msg)
		}
		result.Append(errors.New(msg))
	}
	return result.ErrorOrNil()
}

func (v *Validator) message(e validator.FieldError) string {
	if rule, found := v.rules[e.Tag()]; found {
		if rule.ErrorMsgFunc != nil {
			return rule.ErrorMsgFunc(e)
		}
		if rule.ErrorMsg != "" {
			return rule.ErrorMsg
		}
	}

	// Remove the field name, it is replaced by the full path.
	return strings.TrimSpace(strings.TrimPrefix(e.Translate(v.translator), e.Field()))
}

// fieldPath removes the struct name (first part) and the nested parts from the namespace.
func fieldPath(namespace string, isStruct bool) string {
	namespace = strings.ReplaceAll(namespace, nestedName+".", "")
	if isStruct {
		if _, after, found := strings.Cut(namespace, "."); found {
			return after
		}
		return ""
	}
	return namespace
}
