package ownership

import "strings"

// nodeLabel derives the display label for a node from its variant.
func nodeLabel(attributes map[string]any, variant, id string) string {
	switch variant {
	case "Provider":
		if name := attrString(attributes, "display_name"); name != "" {
			return name
		}
	case "CorporateEntity":
		if name := attrString(attributes, "name"); name != "" {
			return name
		}
		if dba := attrString(attributes, "dba"); dba != "" {
			return dba
		}
	case "Person":
		parts := make([]string, 0, 3)
		for _, field := range []string{"first_name", "middle_name", "last_name"} {
			if v := attrString(attributes, field); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return id
}

func attrString(attributes map[string]any, key string) string {
	v, ok := attributes[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// attrBool reads a boolean attribute; the CSV export writes flags as the
// literal strings "true"/"false" while the bolt driver returns real bools.
func attrBool(attributes map[string]any, key string) bool {
	v, ok := attributes[key]
	if !ok || v == nil {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}

// attrFloat reads a numeric attribute; graph drivers hand numbers back as
// either int64 or float64 depending on how the ETL wrote them.
func attrFloat(attributes map[string]any, key string) *float64 {
	v, ok := attributes[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int64:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	}
	return nil
}
