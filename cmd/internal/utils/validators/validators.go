package validators

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// BcryptMaxBytes is the longest password bcrypt will hash without truncating.
const BcryptMaxBytes = 72

var hasSpaces = regexp.MustCompile(`\s+`)

// New returns a validator with every custom tag used by the contracts registered.
func New() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
	_ = validate.RegisterValidation("notblank", NotBlank)
	_ = validate.RegisterValidation("maxbytes", MaxBytes)
	return validate
}

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return !hasSpaces.MatchString(field.String())
}

// NotBlank rejects strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		log.Warnf("validator 'notblank' applied to non-string type: %s", field.Kind().String())
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

// MaxBytes checks the byte length (not the rune count) of a string against
// the tag parameter, e.g. `maxbytes=72`.
func MaxBytes(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		log.Warnf("validator 'maxbytes' has invalid param: %q", fl.Param())
		return false
	}
	return len(field.String()) <= limit
}
