package obs

import "strings"

// CanonicalPath collapses per-resource path segments so metric label
// cardinality stays bounded regardless of how many DocTypes or forms exist.
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}

	if rest, ok := strings.CutPrefix(path, "/v1/doctypes/"); ok && rest != "" {
		if strings.HasSuffix(rest, "/fields") && !strings.Contains(strings.TrimSuffix(rest, "/fields"), "/") {
			return "/v1/doctypes/:name/fields"
		}
		if !strings.Contains(rest, "/") {
			return "/v1/doctypes/:name"
		}
	}
	if rest, ok := strings.CutPrefix(path, "/v1/forms/"); ok && rest != "" {
		if rest != "assign" && rest != "share" && !strings.Contains(rest, "/") {
			return "/v1/forms/:id"
		}
	}
	return path
}
