package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/archoffice/bff-admin/pkg/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var inviteEmailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// typeMessages overrides the kind-based wording for a few fields.
var typeMessages = map[string]string{
	"whatsapp": "deve ser boolean",
	"telegram": "deve ser boolean",
	"phones":   "deve ser uma lista de objetos",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("invite_email", func(fl validator.FieldLevel) bool {
		return inviteEmailPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Validate checks i against its struct tags and reports only the first
// violated rule, in field declaration order.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return errs.Validation(errs.MsgInvalidBody)
	}

	return errs.Validation(message(validationErrs[0]))
}

// BindError turns a body decoding failure into a validation error. Unknown
// keys and wrongly typed values are reported before any schema rule. Bodies
// with an unsupported content type are treated as empty so that the schema
// reports the missing fields instead.
func (v *Validator) BindError(err error) error {
	if err == nil || errors.Is(err, echo.ErrUnsupportedMediaType) {
		return nil
	}

	var unknownErr *UnknownFieldError
	if errors.As(err, &unknownErr) {
		return errs.Validation(fmt.Sprintf("O campo %s não é permitido", unknownErr.Field))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := leafField(typeErr.Field)
		if field == "" {
			return errs.Validation(errs.MsgInvalidBody)
		}
		return errs.Validation(fmt.Sprintf("O campo %s %s", field, typeMessage(field, typeErr.Type)))
	}

	return errs.Validation(errs.MsgInvalidBody)
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O campo %s é obrigatório", field)
	case "min":
		return fmt.Sprintf("O campo %s não pode ser vazio", field)
	case "email":
		return fmt.Sprintf("O campo %s deve ser um email válido", field)
	case "invite_email":
		return "Email inválido"
	default:
		return fmt.Sprintf("O campo %s é inválido", field)
	}
}

func typeMessage(field string, t reflect.Type) string {
	if msg, ok := typeMessages[field]; ok {
		return msg
	}

	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return "é inválido"
	}

	switch t.Kind() {
	case reflect.String:
		return "deve ser uma string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "deve ser um número"
	case reflect.Bool:
		return "deve ser um booleano"
	case reflect.Slice, reflect.Array:
		return "deve ser uma lista"
	case reflect.Struct, reflect.Map:
		return "deve ser um objeto"
	default:
		return "é inválido"
	}
}

// leafField returns the innermost named field of a decoder path such as
// "phones.0.phoneId", skipping element indexes.
func leafField(path string) string {
	parts := strings.Split(path, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" && strings.Trim(parts[i], "0123456789") != "" {
			return parts[i]
		}
	}
	return ""
}
