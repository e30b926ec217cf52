package docstore

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// containsFoldFunc is the SQL name of the Unicode case-insensitive
// substring test. SQLite's own lower() only folds ASCII.
const containsFoldFunc = "containsfold"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(containsFoldFunc, 2, containsFold); err != nil {
		panic(err)
	}
}

// containsFold reports 1 when args[0] contains args[1] under Unicode case
// folding. A NULL operand yields NULL.
func containsFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	haystack, ok := textArg(args[0])
	if !ok {
		return nil, nil
	}
	needle, ok := textArg(args[1])
	if !ok {
		return nil, nil
	}
	if strings.Contains(foldCase(haystack), foldCase(needle)) {
		return int64(1), nil
	}
	return int64(0), nil
}

func textArg(v driver.Value) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}

// foldCase maps s to a form where simple case variants compare equal.
func foldCase(s string) string {
	return strings.ToLower(strings.ToUpper(s))
}
