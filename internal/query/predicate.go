// Package query builds the declarative predicate sets that shape what the
// repository layer fetches from the document store. Nothing in here
// executes a query; store adapters switch on Predicate.Kind and translate.
package query

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Predicate.
type Kind int

const (
	KindSelect Kind = iota + 1
	KindEqual
	KindIsNull
	KindIsNotNull
	KindGreaterOrEqual
	KindLessThan
	KindContains
	KindAnd
	KindOrderAsc
	KindOrderDesc
	KindLimit
)

var kindNames = map[Kind]string{
	KindSelect:         "select",
	KindEqual:          "equal",
	KindIsNull:         "isNull",
	KindIsNotNull:      "isNotNull",
	KindGreaterOrEqual: "greaterThanEqual",
	KindLessThan:       "lessThan",
	KindContains:       "contains",
	KindAnd:            "and",
	KindOrderAsc:       "orderAsc",
	KindOrderDesc:      "orderDesc",
	KindLimit:          "limit",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsFilter reports whether k narrows the result set.
func (k Kind) IsFilter() bool {
	switch k {
	case KindEqual, KindIsNull, KindIsNotNull, KindGreaterOrEqual, KindLessThan, KindContains, KindAnd:
		return true
	}
	return false
}

// Document field names shared by the builders and the store adapters.
const (
	FieldID        = "$id"
	FieldUserID    = "userId"
	FieldContent   = "content"
	FieldCompleted = "completed"
	FieldDueDate   = "dueDate"
	FieldProjectID = "projectId"
	FieldName      = "name"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Predicate is one filter, sort, projection or limit instruction. Only the
// fields relevant to Kind are set. Predicates are values; builders copy
// any slices they are given.
type Predicate struct {
	Kind     Kind
	Field    string
	Value    any
	Fields   []string
	Children []Predicate
	N        int
}

func (p Predicate) String() string {
	switch p.Kind {
	case KindSelect:
		return fmt.Sprintf("select(%s)", strings.Join(p.Fields, ","))
	case KindIsNull, KindIsNotNull, KindOrderAsc, KindOrderDesc:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Field)
	case KindAnd:
		parts := make([]string, len(p.Children))
		for i, c := range p.Children {
			parts[i] = c.String()
		}
		return fmt.Sprintf("and(%s)", strings.Join(parts, ", "))
	case KindLimit:
		return fmt.Sprintf("limit(%d)", p.N)
	default:
		return fmt.Sprintf("%s(%s, %v)", p.Kind, p.Field, p.Value)
	}
}

// Set is an ordered predicate list describing one complete query. Builders
// always emit filters first, then sort, then select, then limit.
type Set []Predicate

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Filters returns the filter predicates of s in order.
func (s Set) Filters() Set {
	var out Set
	for _, p := range s {
		if p.Kind.IsFilter() {
			out = append(out, p)
		}
	}
	return out
}

// Has reports whether s contains a predicate of kind k.
func (s Set) Has(k Kind) bool {
	for _, p := range s {
		if p.Kind == k {
			return true
		}
	}
	return false
}
