package validation

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"igreja_backend/internal/domain"
)

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// pageSchema declara os quatro parâmetros de paginação aceitos por toda
// listagem. limit acima de 100 é rejeitado, nunca honrado.
var pageSchema = Schema{
	Fields: []Field{
		{Name: "page", Kind: Int, Min: FloatPtr(1)},
		{Name: "limit", Kind: Int, Min: FloatPtr(1), Max: FloatPtr(domain.MaxLimit)},
		{Name: "sort", Kind: String, MaxLen: 64},
		{Name: "order", Kind: String, Enum: []string{"asc", "desc"}},
	},
}

// ParsePageSpec validates page/limit/sort/order with their defaults.
func ParsePageSpec(values url.Values) (domain.PageSpec, error) {
	input := map[string]any{}
	for _, key := range []string{"page", "limit", "sort", "order"} {
		if v := values.Get(key); v != "" {
			input[key] = v
		}
	}

	normalized, err := pageSchema.Validate(input, true)
	if err != nil {
		return domain.PageSpec{}, err
	}

	spec := domain.PageSpec{
		Page:  domain.DefaultPage,
		Limit: domain.DefaultLimit,
		Order: "desc",
	}
	if v, ok := normalized["page"].(int64); ok {
		spec.Page = int(v)
	}
	if v, ok := normalized["limit"].(int64); ok {
		spec.Limit = int(v)
	}
	if v, ok := normalized["sort"].(string); ok {
		spec.Sort = v
	}
	if v, ok := normalized["order"].(string); ok {
		spec.Order = v
	}
	return spec, nil
}

// QueryFilter binds one recognized query parameter to a storage column and
// predicate kind. Anything not listed for the endpoint is ignored, not
// rejected.
type QueryFilter struct {
	Param  string
	Column string
	Kind   domain.PredicateKind
	Value  Kind // how the raw string is typed before hitting the store
}

// ParseFilters turns the recognized query parameters into conjunctive
// predicates. A recognized parameter with an untypeable value is a validation
// error.
func ParseFilters(values url.Values, specs []QueryFilter) ([]domain.Filter, error) {
	var filters []domain.Filter
	var violations []domain.FieldError

	for _, spec := range specs {
		raw := strings.TrimSpace(values.Get(spec.Param))
		if raw == "" {
			continue
		}
		raw = SanitizeString(raw)

		var value any = raw
		switch spec.Value {
		case Int:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				violations = append(violations, domain.FieldError{Field: spec.Param, Message: "deve ser um número inteiro"})
				continue
			}
			value = n
		case Float:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				violations = append(violations, domain.FieldError{Field: spec.Param, Message: "deve ser um número"})
				continue
			}
			value = n
		case Date:
			if _, err := parseDate(raw); err != nil {
				violations = append(violations, domain.FieldError{Field: spec.Param, Message: "data inválida, use o formato AAAA-MM-DD"})
				continue
			}
		case Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				violations = append(violations, domain.FieldError{Field: spec.Param, Message: "deve ser verdadeiro ou falso"})
				continue
			}
			value = b
		}

		filters = append(filters, domain.Filter{Column: spec.Column, Kind: spec.Kind, Value: value})
	}

	if len(violations) > 0 {
		return nil, domain.ValidationError{Fields: violations}
	}
	return filters, nil
}
