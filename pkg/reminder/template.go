package reminder

import (
	"fmt"
	"reflect"
	"regexp"
)

var placeholderRegex = regexp.MustCompile(`{{\s*([\w.]+)\s*}}`)

// Interpolate replaces every {{ key }} in template with the stringified value
// from context. Missing keys and nil values render as an empty string.
func Interpolate(template string, context map[string]any) string {
	return placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		key := placeholderRegex.FindStringSubmatch(match)[1]
		value, ok := context[key]
		if !ok || isNil(value) {
			return ""
		}
		return fmt.Sprint(value)
	})
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
