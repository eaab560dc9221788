package domain

import "strings"

// ParseCompletedFlag coerces the completed value of an update body:
//
//	boolean true  -> true
//	string "true" -> true (exact, case-sensitive)
//	anything else -> false
func ParseCompletedFlag(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true"
	default:
		return false
	}
}

// ParseCompletedFilter coerces the completed query parameter of a list
// request: "true" in any letter case selects completed todos, every other
// value selects incomplete ones.
func ParseCompletedFilter(s string) bool {
	return strings.EqualFold(s, "true")
}
