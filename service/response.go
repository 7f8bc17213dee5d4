package service

import (
	"strconv"
)

// Response is a decoded PayPal JSON object. Nested objects are
// map[string]interface{} and nested arrays are []interface{}.
type Response map[string]interface{}

// Has reports whether key holds a non-empty value. null, false, 0, "", "0"
// and empty arrays or objects all count as empty.
func (r Response) Has(key string) bool {
	v, ok := r[key]
	return ok && !isEmpty(v)
}

// String returns the value of key as a string, or "" when it is absent or
// not a scalar
func (r Response) String(key string) string {
	return stringOf(r[key])
}

func isEmpty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	case float64:
		return t == 0
	case int:
		return t == 0
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	case Response:
		return len(t) == 0
	}
	return false
}

func stringOf(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case Response:
		return t, true
	}
	return nil, false
}

func asList(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case []map[string]interface{}:
		list := make([]interface{}, len(t))
		for i := range t {
			list[i] = t[i]
		}
		return list, true
	}
	return nil, false
}

// first returns the first element of the array held in key of obj, as an object
func first(obj map[string]interface{}, key string) (map[string]interface{}, bool) {
	list, ok := asList(obj[key])
	if !ok || len(list) == 0 {
		return nil, false
	}
	return asObject(list[0])
}
