package validation

import (
	"fmt"
	"strings"

	"github.com/Dias221467/Wallpaper_Hub/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule is a single predicate with the message reported when it fails.
// Tag is a go-playground/validator tag evaluated against the field value;
// Func, when set, is used instead.
type Rule struct {
	Tag     string
	Func    func(value interface{}) bool
	Message string
}

func (r Rule) passes(value interface{}) bool {
	if r.Func != nil {
		return r.Func(value)
	}
	return validate.Var(value, r.Tag) == nil
}

// Schema maps field names to ordered rule chains. Fields are evaluated in the
// order they were declared.
type Schema struct {
	fields []string
	rules  map[string][]Rule
}

func NewSchema() *Schema {
	return &Schema{rules: make(map[string][]Rule)}
}

// Field appends rules to the chain for name.
func (s *Schema) Field(name string, rules ...Rule) *Schema {
	if _, ok := s.rules[name]; !ok {
		s.fields = append(s.fields, name)
	}
	s.rules[name] = append(s.rules[name], rules...)
	return s
}

// Check runs every field's chain and collects the first failure of each
// field. Fields missing from values are checked as empty strings.
func (s *Schema) Check(values map[string]interface{}) []apperrors.FieldError {
	var failures []apperrors.FieldError
	for _, field := range s.fields {
		value, ok := values[field]
		if !ok {
			value = ""
		}
		for _, rule := range s.rules[field] {
			if !rule.passes(value) {
				failures = append(failures, apperrors.FieldError{Field: field, Message: rule.Message})
				break
			}
		}
	}
	return failures
}

// Validate is Check wrapped into a validation error, or nil when every rule passes.
func (s *Schema) Validate(values map[string]interface{}) error {
	if failures := s.Check(values); len(failures) > 0 {
		return apperrors.Validation(failures)
	}
	return nil
}

func Required(message string) Rule {
	return Rule{Tag: "required", Message: message}
}

func MaxLen(n int, message string) Rule {
	return Rule{Tag: fmt.Sprintf("max=%d", n), Message: message}
}

func MinLen(n int, message string) Rule {
	return Rule{Tag: fmt.Sprintf("min=%d", n), Message: message}
}

func Email(message string) Rule {
	return Rule{Tag: "email", Message: message}
}

func MongoID(message string) Rule {
	return Rule{Tag: "mongodb", Message: message}
}

// OneOf requires the value to be one of allowed. Values must not contain whitespace.
func OneOf(allowed []string, message string) Rule {
	return Rule{Tag: "oneof=" + strings.Join(allowed, " "), Message: message}
}

// NotEmptyBytes requires a non-empty byte slice.
func NotEmptyBytes(message string) Rule {
	return Rule{
		Func: func(value interface{}) bool {
			b, ok := value.([]byte)
			return ok && len(b) > 0
		},
		Message: message,
	}
}
