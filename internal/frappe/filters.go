package frappe

import "encoding/json"

// Filters builds the Frappe list-filter expression [["field","op","value"],…].
// Values are serialized with encoding/json, so user-controlled input (DocType
// names, emails) cannot break out of the expression.
type Filters [][3]any

// Eq appends an equality condition.
func (f Filters) Eq(field string, value any) Filters {
	return append(f, [3]any{field, "=", value})
}

// Like appends a substring condition. The caller supplies the % wildcards.
func (f Filters) Like(field, pattern string) Filters {
	return append(f, [3]any{field, "like", pattern})
}

// Encode renders the filter expression as the JSON the resource API expects.
func (f Filters) Encode() string {
	if len(f) == 0 {
		return "[]"
	}
	data, err := json.Marshal(f)
	if err != nil {
		// Only reachable with unmarshalable values, which the ledgers never pass.
		return "[]"
	}
	return string(data)
}
