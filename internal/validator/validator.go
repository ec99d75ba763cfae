package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Los errores usan el nombre JSON del campo, que es lo que ve el cliente.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// Validate corre las reglas declaradas en los tags `validate`.
func Validate(value any) error {
	return validate.Struct(value)
}

// RegisterValidation permite que cada paquete de dominio sume sus propios tags.
// Debe llamarse desde init(), antes de cualquier Validate.
func RegisterValidation(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// FormatValidationErrors convierte validator.ValidationErrors en campo -> mensaje.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return out
	}
	for _, fieldErr := range validationErrors {
		out[fieldPath(fieldErr)] = formatFieldError(fieldErr)
	}
	return out
}

// Describe arma un mensaje único y estable (campos ordenados) para el body de error.
func Describe(err error) string {
	fields := FormatValidationErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+fields[key])
	}
	return strings.Join(parts, "; ")
}

// fieldPath saca el nombre del struct raíz: "CreateWishlistInput.items[0].price" -> "items[0].price".
func fieldPath(fieldErr validator.FieldError) string {
	namespace := fieldErr.Namespace()
	if index := strings.Index(namespace, "."); index >= 0 {
		return namespace[index+1:]
	}
	return fieldErr.Field()
}

func formatFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Minimum length is %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fieldErr.Param())
	case "item_date":
		return "Must match MM/DD/YYYY, HH:MM:SS"
	default:
		return fmt.Sprintf("Validation failed on '%s'", fieldErr.Tag())
	}
}
