package util

import "encoding/json"

// ConvertStructToJson marshals v, returning the empty string on failure so
// callers can inline it into log and queue payloads.
func ConvertStructToJson(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
