package forms

import (
	"context"
	"errors"
	"strings"

	"formgate.org/internal/frappe"
)

// structuralFieldTypes are layout-only field kinds that never carry data and
// are excluded from every projection.
var structuralFieldTypes = map[string]struct{}{
	"Section Break": {},
	"Column Break":  {},
	"HTML":          {},
	"Table":         {},
	"Heading":       {},
}

type docTypeSchema struct {
	Name   string  `json:"name"`
	Module string  `json:"module"`
	Fields []Field `json:"fields"`
}

// DocTypes lists the upstream DocTypes available for form building. Single
// and child-table DocTypes are filtered out upstream.
func (s *Service) DocTypes(ctx context.Context) ([]DocTypeInfo, error) {
	var rows []DocTypeInfo
	err := s.store.List(ctx, "DocType", frappe.ListOptions{
		Fields:  []string{"name", "module", "icon"},
		Filters: frappe.Filters{}.Eq("issingle", 0).Eq("istable", 0),
		Limit:   listLimit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []DocTypeInfo{}
	}
	for i := range rows {
		if rows[i].Module == "" {
			rows[i].Module = "Custom"
		}
		if rows[i].Icon == "" {
			rows[i].Icon = defaultIcon
		}
	}
	return rows, nil
}

// DocTypeFields fetches the schema of one DocType and projects it into
// UI-safe field descriptors. Field order follows the upstream schema.
func (s *Service) DocTypeFields(ctx context.Context, name string) (DocTypeFields, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DocTypeFields{}, invalidf("doctype name is required")
	}

	var schema docTypeSchema
	if err := s.store.Get(ctx, "DocType", name, &schema); err != nil {
		var apiErr *frappe.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return DocTypeFields{}, notFoundf("doctype %q does not exist", name)
		}
		return DocTypeFields{}, err
	}

	return DocTypeFields{
		Doctype: name,
		Module:  schema.Module,
		Fields:  projectFields(schema.Fields),
	}, nil
}

// projectFields drops hidden fields and structural field kinds, preserving
// the upstream order of what remains.
func projectFields(in []Field) []Field {
	out := make([]Field, 0, len(in))
	for _, f := range in {
		if f.Hidden != 0 {
			continue
		}
		if _, structural := structuralFieldTypes[f.Fieldtype]; structural {
			continue
		}
		out = append(out, f)
	}
	return out
}
