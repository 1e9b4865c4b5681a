package repository

import (
	"fmt"
	"net/url"
	"regexp"
)

// Operator enumerates the comparisons a property filter may use. The set is
// an allow-list: anything else is rejected before a query is ever built, and
// filter values are always bound as query parameters, never interpolated.
type Operator string

const (
	OpEquals     Operator = "eq"
	OpNotEquals  Operator = "ne"
	OpGreater    Operator = "gt"
	OpGreaterEq  Operator = "gte"
	OpLess       Operator = "lt"
	OpLessEq     Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startswith"
	OpEndsWith   Operator = "endswith"
)

var operators = map[Operator]struct{}{
	OpEquals: {}, OpNotEquals: {},
	OpGreater: {}, OpGreaterEq: {},
	OpLess: {}, OpLessEq: {},
	OpContains: {}, OpStartsWith: {}, OpEndsWith: {},
}

// ParseOperator validates s against the operator allow-list. An empty string
// defaults to equality.
func ParseOperator(s string) (Operator, error) {
	if s == "" {
		return OpEquals, nil
	}
	op := Operator(s)
	if _, ok := operators[op]; !ok {
		return "", fmt.Errorf("unsupported query operator %q", s)
	}
	return op, nil
}

// Filter is a single property comparison applied to a class scan.
type Filter struct {
	Property string
	Op       Operator
	Value    any
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether s is safe to use as a class or property
// name in a query. Identifiers cannot be bound as parameters, so anything
// failing this check is rejected outright.
func ValidIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// FiltersFromQuery builds filters from request query parameters. Each
// parameter is a property comparison; the reserved "op" parameter selects
// the operator applied to all of them.
func FiltersFromQuery(query url.Values) ([]Filter, error) {
	op, err := ParseOperator(query.Get("op"))
	if err != nil {
		return nil, err
	}
	filters := make([]Filter, 0, len(query))
	for name, vals := range query {
		if name == "op" || len(vals) == 0 {
			continue
		}
		if !ValidIdentifier(name) {
			return nil, fmt.Errorf("invalid property name %q", name)
		}
		filters = append(filters, Filter{Property: name, Op: op, Value: vals[0]})
	}
	return filters, nil
}
