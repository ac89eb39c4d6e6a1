// Package validation валидация структур через go-playground/validator
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagFacilityID тег для идентификатора площадки: UUID или слаг из каталога
const TagFacilityID = "facility_id"

var facilityIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(TagFacilityID, func(fl validator.FieldLevel) bool {
		return IsFacilityID(fl.Field().String())
	})
	return v
}

// IsFacilityID проверяет формат идентификатора площадки
func IsFacilityID(id string) bool {
	return facilityIDPattern.MatchString(id)
}

// Struct валидирует структуру и возвращает ошибки по полям
// Ключ - путь к полю без имени корневой структуры ("Players.TeamName")
func Struct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range validationErrors {
		errs[fieldPath(fe)] = message(fe)
	}
	return errs
}

// Format склеивает ошибки в одну строку в стабильном порядке
func Format(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errs[field]))
	}
	return strings.Join(msgs, "; ")
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case TagFacilityID:
		return "must contain only letters, digits, '-' or '_' (up to 64 characters)"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
