package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В сообщениях об ошибках используем имена полей из json-тегов
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Postgres хранит amount как NUMERIC(12, 2): не больше двух знаков после запятой
	if err := v.RegisterValidation("cents", func(fl validator.FieldLevel) bool {
		amount := decimal.NewFromFloat(fl.Field().Float())
		return amount.Equal(amount.Round(2))
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidationMessage превращает ошибку разбора или валидации запроса
// в короткое сообщение для клиента.
func ValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "gt":
			return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
		case "lt":
			return fmt.Sprintf("%s must be less than %s", fe.Field(), fe.Param())
		case "cents":
			return fe.Field() + " must have at most 2 decimal places"
		case "oneof":
			return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
		case "uuid":
			return fe.Field() + " must be a valid UUID"
		default:
			return fe.Field() + " is invalid"
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type))
	}

	return "invalid request body"
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "number"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
