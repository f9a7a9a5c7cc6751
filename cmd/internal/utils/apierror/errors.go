package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// Empty reports whether no problem was added yet.
func (s *StructuredError) Empty() bool {
	return len(s.Errors) == 0
}

// CheckInError carries the check-in state along with the message so clients
// can refresh the widget without another round trip.
type CheckInError struct {
	Message        string `json:"message"`
	CheckedInToday bool   `json:"checked_in_today"`
	Status         int    `json:"-"`
}

func (c *CheckInError) Code() int {
	return c.Status
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed JSON body")
	MalformedQueryError = NewSimple(400, "Malformed query parameters")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError  = NewSimple(404, "Resource not found")
	InvalidIDError = NewSimple(400, "The provided ID is invalid, IDs are positive integers")

	/*
	 * Used for authentications
	 */
	UnauthorizedError        = NewSimple(401, "Unauthorized")
	InvalidAuthTokenError    = NewSimple(401, "Invalid or expired authentication token")
	IDPUserNotFoundError     = NewSimple(404, "User not found")
	IDPExistingEmailError    = NewSimple(400, "Email already in use")
	IDPInvalidParameterError = NewSimple(400, "Invalid parameters provided to the identity provider")

	/*
	 * Domain specific
	 */
	EventNotFoundError         = NewSimple(404, "Event not found")
	EventMissingFieldsError    = NewSimple(400, "Title and start date are required")
	ProfileMissingFieldsError  = NewSimple(400, "Name and email are required")
	EmailConfirmMismatchError  = NewSimple(400, "Email confirmation does not match")
	CalendarNotEnabledError    = NewSimple(400, "Google Calendar not enabled")
	CalendarNotConnectedError  = NewSimple(400, "Google Calendar not connected")
	CalendarNotConfiguredError = NewSimple(503, "Google Calendar integration is not configured")
	InvalidActionError         = NewSimple(400, "Invalid action")
	CalendarSyncError          = NewSimple(500, "Failed to sync Google Calendar")
	WeatherUnavailableError    = NewSimple(500, "Failed to fetch weather data")
	CurrencyUnavailableError   = NewSimple(500, "Failed to fetch currency data")
	AlreadyCheckedInError      = &CheckInError{Message: "Already checked in today", CheckedInToday: true, Status: 400}
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := toSnakeCase(fe.Field())

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "oneof":
			problems[field] = append(problems[field], "Value must be one of: "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "hexcolor":
			problems[field] = append(problems[field], "Value must be a hex color, like #3B82F6")
		case "iso4217":
			problems[field] = append(problems[field], "Value must be an ISO 4217 currency code")
		case "timestamp", "timestamp_or_empty":
			problems[field] = append(problems[field], "Value must be a RFC3339 timestamp or a YYYY-MM-DD date")
		case "nodupes":
			problems[field] = append(problems[field], "Value cannot contain duplicates")
		case "nospaces":
			problems[field] = append(problems[field], "Value cannot contain whitespaces")
		case "latitude", "longitude":
			problems[field] = append(problems[field], "Value must be a valid coordinate")

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "Missing required parameter '%s'", name)
}

// toSnakeCase matches the validator field names with the JSON keys clients send.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
