package shared

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/i18n"
)

// MaxBodyBytes bounds the size of a decoded request body.
const MaxBodyBytes = 1 << 20

// ErrMalformedBody is returned by DecodeJSON for bodies that are not a JSON
// object of the expected shape.
var ErrMalformedBody = fmt.Errorf("%w: malformed request body", domain.ErrValidation)

// Global validator instance for reuse
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("password", validatePassword); err != nil {
		panic(fmt.Sprintf("register password validation: %v", err)) // ALLOW-PANIC
	}
	return v
}

// validatePassword requires at least 8 characters with an uppercase letter, a
// digit and a symbol.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len([]rune(password)) < 8 {
		return false
	}
	var upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && digit && symbol
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`

	key string
}

// MessageKey is the translation key describing the failure.
func (f FieldError) MessageKey() string {
	if f.key != "" {
		return f.key
	}
	return "validation.invalid"
}

// ValidationError collects every failed field of a request, in the order the
// fields are declared.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Tag
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap makes a ValidationError match domain.ErrValidation.
func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// Localize renders the error as the validation.failed message followed by the
// message of every field, joined with "; ".
func (e *ValidationError) Localize(l *i18n.Localizer) string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = l.T(f.MessageKey(), f.Field, f.Param)
	}
	return l.T("validation.failed") + ": " + strings.Join(messages, "; ")
}

// InvalidParam reports a path or query parameter that is not a positive integer.
func InvalidParam(field string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{
		Field: field,
		Tag:   "param",
		key:   "validation.invalidParam",
	}}}
}

// DecodeJSON decodes the request body into the given struct. Unknown fields
// are ignored; values of the wrong JSON type yield a ValidationError naming
// every such field. The other fields are still decoded, so the struct can be
// validated after a type error.
func DecodeJSON(r *http.Request, v interface{}) error {
	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	err = json.NewDecoder(bytes.NewReader(data)).Decode(v)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return typeErrors(data, v, typeErr)
}

// typeErrors decodes the members of the object in data one at a time, since
// a decoder stops at the first value it cannot store.
func typeErrors(data []byte, v any, first *json.UnmarshalTypeError) *ValidationError {
	result := &ValidationError{}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err == nil {
		for name, value := range members {
			member, err := json.Marshal(map[string]json.RawMessage{name: value})
			if err != nil {
				continue
			}
			var typeErr *json.UnmarshalTypeError
			if err := json.Unmarshal(member, v); errors.As(err, &typeErr) && typeErr.Field != "" {
				result.Fields = append(result.Fields, typeFieldError(typeErr))
			}
		}
	}
	if len(result.Fields) == 0 {
		result.Fields = append(result.Fields, typeFieldError(first))
	}
	sortFields(v, result.Fields)
	return result
}

func typeFieldError(err *json.UnmarshalTypeError) FieldError {
	return FieldError{
		Field: err.Field,
		Tag:   "type",
		Param: err.Type.String(),
		key:   "validation.invalidType",
	}
}

// CombineValidationErrors merges the ValidationErrors among errs into one that
// reports each field once, in the order v declares its fields. The first
// error that is not a ValidationError is returned unchanged.
func CombineValidationErrors(v any, errs ...error) error {
	combined := &ValidationError{}
	seen := make(map[string]bool)
	for _, err := range errs {
		if err == nil {
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for _, f := range ve.Fields {
			if seen[f.Field] {
				continue
			}
			seen[f.Field] = true
			combined.Fields = append(combined.Fields, f)
		}
	}
	if len(combined.Fields) == 0 {
		return nil
	}
	sortFields(v, combined.Fields)
	return combined
}

// sortFields orders fields by the declaration order of v's JSON fields.
func sortFields(v any, fields []FieldError) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return
	}
	order := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" {
			name = t.Field(i).Name
		}
		order[name] = i
	}
	slices.SortStableFunc(fields, func(a, b FieldError) int {
		return cmp.Compare(order[a.Field], order[b.Field])
	})
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v interface{}) error {
	// Check if the object implements the Validate interface
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	result := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		result.Fields = append(result.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
			key:   messageKey(fe),
		})
	}
	return result
}

func messageKey(fe validator.FieldError) string {
	textual := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice
	switch fe.Tag() {
	case "required":
		return "validation.required"
	case "min":
		if textual {
			return "validation.minLength"
		}
		return "validation.minValue"
	case "max":
		if textual {
			return "validation.maxLength"
		}
		return "validation.maxValue"
	case "gte", "gt":
		return "validation.minValue"
	case "lte", "lt":
		return "validation.maxValue"
	case "email":
		return "validation.email"
	case "oneof":
		return "validation.oneof"
	case "password":
		return "validation.password"
	}
	return "validation.invalid"
}

// FlexInt is an integer that also accepts a JSON string holding an integer.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + strconv.Quote(string(data)), Type: reflect.TypeOf(0)}
	}
	*f = FlexInt(n)
	return nil
}

// IntPtr converts an optional FlexInt into an optional int.
func (f *FlexInt) IntPtr() *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
