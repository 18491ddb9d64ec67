package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"igreja_backend/internal/domain"
)

// Kind enumerates the primitive types a field may declare.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Date  // 2006-01-02
	Clock // 15:04
	Email
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Field is one declarative input rule.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	MinLen   int
	MaxLen   int
	Enum     []string
	Min      *float64
	Max      *float64
	Positive bool
}

// Schema is the declarative rule set applied to one endpoint's input.
type Schema struct {
	Fields []Field
}

// Validate sanitizes every string leaf, applies the rules and returns the
// normalized record. Keys without a rule are dropped; the failure is a single
// domain.ValidationError carrying every violation. When coerce is true,
// string inputs are converted to the declared type (query strings are always
// strings on the wire).
func (s Schema) Validate(input map[string]any, coerce bool) (map[string]any, error) {
	input = SanitizeRecord(input)

	out := make(map[string]any, len(s.Fields))
	var violations []domain.FieldError

	fail := func(name, msg string) {
		violations = append(violations, domain.FieldError{Field: name, Message: msg})
	}

	for _, field := range s.Fields {
		raw, present := input[field.Name]
		if !present || raw == nil {
			if field.Required {
				fail(field.Name, "campo obrigatório")
			}
			continue
		}
		if str, ok := raw.(string); ok && str == "" && field.Kind != String {
			if field.Required {
				fail(field.Name, "campo obrigatório")
			}
			continue
		}

		value, err := normalize(field, raw, coerce)
		if err != "" {
			fail(field.Name, err)
			continue
		}
		out[field.Name] = value
	}

	if len(violations) > 0 {
		return nil, domain.ValidationError{Fields: violations}
	}
	return out, nil
}

// normalize checks one value against its rule and returns a typed result or a
// message describing the violation.
func normalize(field Field, raw any, coerce bool) (any, string) {
	switch field.Kind {
	case String, Email:
		str, ok := raw.(string)
		if !ok {
			return nil, "deve ser texto"
		}
		if field.Required && str == "" {
			return nil, "campo obrigatório"
		}
		if field.MinLen > 0 && len(str) < field.MinLen {
			return nil, fmt.Sprintf("deve ter no mínimo %d caracteres", field.MinLen)
		}
		if field.MaxLen > 0 && len(str) > field.MaxLen {
			return nil, fmt.Sprintf("deve ter no máximo %d caracteres", field.MaxLen)
		}
		if field.Kind == Email && !emailRe.MatchString(str) {
			return nil, "email inválido"
		}
		if len(field.Enum) > 0 && !contains(field.Enum, str) {
			return nil, fmt.Sprintf("deve ser um de: %s", strings.Join(field.Enum, ", "))
		}
		return str, ""

	case Int:
		n, ok := toFloat(raw, coerce)
		if !ok || n != math.Trunc(n) {
			return nil, "deve ser um número inteiro"
		}
		if msg := checkRange(field, n); msg != "" {
			return nil, msg
		}
		return int64(n), ""

	case Float:
		n, ok := toFloat(raw, coerce)
		if !ok {
			return nil, "deve ser um número"
		}
		if msg := checkRange(field, n); msg != "" {
			return nil, msg
		}
		return n, ""

	case Bool:
		switch v := raw.(type) {
		case bool:
			return v, ""
		case string:
			if coerce {
				if b, err := strconv.ParseBool(v); err == nil {
					return b, ""
				}
			}
		}
		return nil, "deve ser verdadeiro ou falso"

	case Date:
		str, ok := raw.(string)
		if !ok {
			return nil, "deve ser uma data"
		}
		if _, err := time.Parse("2006-01-02", str); err != nil {
			return nil, "data inválida, use o formato AAAA-MM-DD"
		}
		return str, ""

	case Clock:
		str, ok := raw.(string)
		if !ok {
			return nil, "deve ser um horário"
		}
		if _, err := time.Parse("15:04", str); err != nil {
			return nil, "horário inválido, use o formato HH:MM"
		}
		return str, ""
	}
	return raw, ""
}

func checkRange(field Field, n float64) string {
	if field.Positive && n <= 0 {
		return "deve ser maior que zero"
	}
	if field.Min != nil && n < *field.Min {
		return fmt.Sprintf("deve ser no mínimo %v", *field.Min)
	}
	if field.Max != nil && n > *field.Max {
		return fmt.Sprintf("deve ser no máximo %v", *field.Max)
	}
	return ""
}

func toFloat(raw any, coerce bool) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if coerce {
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// FloatPtr is a convenience for schema literals.
func FloatPtr(v float64) *float64 { return &v }
