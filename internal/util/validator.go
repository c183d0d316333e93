package util

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their wire name: the query tag when
// present, then the json tag, then the Go field name.
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(wireName)
	if err := validate.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	return validate
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"query", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		switch name {
		case "":
			continue
		case "-":
			return f.Name
		default:
			return name
		}
	}
	return f.Name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
