package validators

import (
	"reflect"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

var hasSpaces = regexp.MustCompile(`\s+`)

// Register installs every custom tag used by the request contracts.
func Register(validate *validator.Validate) {
	_ = validate.RegisterValidation("nodupes", NoDupes)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
	_ = validate.RegisterValidation("timestamp", IsTimestamp)
	_ = validate.RegisterValidation("timestamp_or_empty", IsTimestampOrEmpty)
}

// New returns a validator with the custom tags already registered.
func New() *validator.Validate {
	validate := validator.New()
	Register(validate)
	return validate
}

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	str := field.String()
	return !hasSpaces.MatchString(str)
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}

// IsTimestamp accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func IsTimestamp(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	str := field.String()
	if _, err := time.Parse(time.RFC3339, str); err == nil {
		return true
	}
	_, err := time.Parse(time.DateOnly, str)
	return err == nil
}

// IsTimestampOrEmpty also accepts "", which optional dates use to clear a value.
func IsTimestampOrEmpty(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String && fl.Field().String() == "" {
		return true
	}
	return IsTimestamp(fl)
}
