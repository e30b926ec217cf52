package docstore

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sadopc/taskpulse/internal/query"
)

var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// statement is a translated predicate set.
type statement struct {
	where   string
	args    []any
	orderBy []string
	fields  []string
	limit   int
}

func translate(set query.Set) (statement, error) {
	var st statement
	var conds []string
	for _, p := range set {
		switch p.Kind {
		case query.KindOrderAsc, query.KindOrderDesc:
			col, err := column(p.Field)
			if err != nil {
				return statement{}, err
			}
			dir := "ASC"
			if p.Kind == query.KindOrderDesc {
				dir = "DESC"
			}
			st.orderBy = append(st.orderBy, col+" "+dir)
		case query.KindSelect:
			st.fields = append(st.fields, p.Fields...)
		case query.KindLimit:
			st.limit = p.N
		default:
			cond, args, err := condition(p)
			if err != nil {
				return statement{}, err
			}
			conds = append(conds, cond)
			st.args = append(st.args, args...)
		}
	}
	st.where = strings.Join(conds, " AND ")
	return st, nil
}

func condition(p query.Predicate) (string, []any, error) {
	if p.Kind == query.KindAnd {
		if len(p.Children) == 0 {
			return "1", nil, nil
		}
		var parts []string
		var args []any
		for _, c := range p.Children {
			cond, a, err := condition(c)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, cond)
			args = append(args, a...)
		}
		return "(" + strings.Join(parts, " AND ") + ")", args, nil
	}

	col, err := column(p.Field)
	if err != nil {
		return "", nil, err
	}
	switch p.Kind {
	case query.KindEqual:
		v := sqlValue(p.Value)
		if v == nil {
			return col + " IS NULL", nil, nil
		}
		return col + " = ?", []any{v}, nil
	case query.KindIsNull:
		return col + " IS NULL", nil, nil
	case query.KindIsNotNull:
		return col + " IS NOT NULL", nil, nil
	case query.KindGreaterOrEqual:
		return col + " >= ?", []any{sqlValue(p.Value)}, nil
	case query.KindLessThan:
		return col + " < ?", []any{sqlValue(p.Value)}, nil
	case query.KindContains:
		return containsFoldFunc + "(" + col + ", ?) > 0", []any{sqlValue(p.Value)}, nil
	}
	return "", nil, fmt.Errorf("unsupported predicate %s", p.Kind)
}

// column maps a document field to its SQL expression. Metadata fields are
// real columns; everything else is read out of the JSON payload.
func column(field string) (string, error) {
	switch field {
	case query.FieldID:
		return "id", nil
	case query.FieldCreatedAt:
		return "created_at", nil
	case query.FieldUpdatedAt:
		return "updated_at", nil
	}
	if !fieldName.MatchString(field) {
		return "", fmt.Errorf("invalid field name %q", field)
	}
	return "json_extract(data, '$." + field + "')", nil
}

// sqlValue converts a predicate operand to the form json_extract yields
// for the stored value.
func sqlValue(v any) any {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case *string:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

// encodeValue converts a payload value to its JSON-ready form.
func encodeValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return FormatTime(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return FormatTime(*x)
	case *string:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func encodeData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = encodeValue(v)
	}
	return out
}
