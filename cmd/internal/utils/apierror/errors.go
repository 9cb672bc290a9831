package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
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
	Message string `json:"error"`
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

var (
	MalformedBodyError  = NewSimple(http.StatusBadRequest, "Malformed request body")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")

	NoteNotFoundError = NewSimple(http.StatusNotFound, "Note not found")
	UserNotFoundError = NewSimple(http.StatusNotFound, "User not found")
	FileNotFoundError = NewSimple(http.StatusNotFound, "File not found")

	// NoFileProvidedError is returned when a note upload carries no file part.
	NoFileProvidedError = NewSimple(http.StatusBadRequest, "File required")

	/*
	 * Used for authentications
	 */
	MissingTokenError       = NewSimple(http.StatusUnauthorized, "Unauthorized")
	InvalidTokenError       = NewSimple(http.StatusForbidden, "Forbidden")
	InvalidCredentialsError = NewSimple(http.StatusUnauthorized, "Invalid credentials")
	DuplicateEmailError     = NewSimple(http.StatusBadRequest, "Email already exists")

	/*
	 * Used for the generative AI boundary
	 */
	QuizUnavailableError = NewSimple(http.StatusBadGateway, "Failed to generate quiz, please try again")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "required", "notblank":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "gte":
			problems[field] = append(problems[field], "Value must be at least "+fe.Param())
		case "lte":
			problems[field] = append(problems[field], "Value must be at most "+fe.Param())
		case "email":
			problems[field] = append(problems[field], "Value must be a valid email address")
		case "nospaces":
			problems[field] = append(problems[field], "Value must not contain whitespace")
		case "maxbytes":
			problems[field] = append(problems[field], "Value is too long, max bytes: "+fe.Param())

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

func NewFileTooLargeError(maxBytes int64) *APIError {
	return NewSimple(http.StatusRequestEntityTooLarge, "File is too large, max: %s", humanize.IBytes(uint64(maxBytes)))
}
