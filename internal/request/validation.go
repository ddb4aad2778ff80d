package request

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// trimmedmin=N: minimum length after trimming surrounding whitespace
	_ = validate.RegisterValidation("trimmedmin", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(strings.TrimSpace(fl.Field().String())) >= min
	})

	// fromtoday: ISO date not before today. Both sides are truncated to local
	// midnight so the comparison is calendar-based, not timestamp-based.
	_ = validate.RegisterValidation("fromtoday", func(fl validator.FieldLevel) bool {
		d, err := time.ParseInLocation("2006-01-02", fl.Field().String(), time.Local)
		if err != nil {
			return false
		}
		return !startOfDay(d).Before(startOfDay(time.Now()))
	})
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidationError carries the per-field failures of a draft, keyed by JSON
// field name with the failing rule as value. It never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, tag := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f, tag))
	}
	sort.Strings(parts)
	return "invalid request draft: " + strings.Join(parts, ", ")
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		fields[fieldErr.Field()] = fieldErr.Tag()
	}
	return &ValidationError{Fields: fields}
}
