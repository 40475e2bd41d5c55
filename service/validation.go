package service

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const MinNameLength = 3

const DateLayout = "2006-01-02"

var (
	ErrUnsavedChanges = errors.New("there are unsaved changes")
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrNotFound       = errors.New("not found")
	ErrNoSelection    = errors.New("nothing is selected")
)

// ValidationErrors maps a JSON field name to an inline message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

var fieldLabels = map[string]string{
	"season":        "Season",
	"tournamentFee": "Fee",
	"tryoutFee":     "Fee",
	"basePrice":     "Base price",
}

var validate = newValidator()

// newValidator reports fields under their JSON names and knows the calendardate tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, ok := parseDate(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// parseDate accepts a plain date or a full RFC3339 timestamp as the backend serialises dates.
func parseDate(value string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// normalizeDate cuts RFC3339 timestamps down to their date part; other values pass unchanged.
func normalizeDate(value string) string {
	if _, err := time.Parse(DateLayout, value); err == nil {
		return value
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format(DateLayout)
	}
	return value
}

func normalizeDates(values []string) []string {
	if values == nil {
		return nil
	}
	output := make([]string, len(values))
	for i, value := range values {
		output[i] = normalizeDate(value)
	}
	return output
}

// validateStruct runs the validate tags of s and turns failures into inline messages.
func validateStruct(s any) ValidationErrors {
	errs := ValidationErrors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrors {
		if _, ok := errs[fe.Field()]; !ok {
			errs[fe.Field()] = fieldMessage(fe)
		}
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "gt":
		if fe.Kind() == reflect.Int {
			return "Year is required"
		}
		return fmt.Sprintf("%s must be more than %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be zero or more", label)
	case "calendardate":
		return "Date must use the YYYY-MM-DD format"
	}
	return fmt.Sprintf("%s is invalid", label)
}

func validateName(label string, name string) string {
	err := validate.Var(strings.TrimSpace(name), fmt.Sprintf("required,min=%d", MinNameLength))
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return ""
	}
	if fieldErrors[0].Tag() == "required" {
		return fmt.Sprintf("%s is required", label)
	}
	return fmt.Sprintf("%s must be at least %d characters", label, MinNameLength)
}
