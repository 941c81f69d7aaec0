package forms

import (
	"context"
	"strings"

	"formgate.org/internal/frappe"
)

// AssignedFormsForCaller resolves the acting user from the forwarded
// credential and returns the forms assigned to them.
func (s *Service) AssignedFormsForCaller(ctx context.Context) ([]AssignedForm, error) {
	user, err := s.store.LoggedUser(ctx)
	if err != nil {
		return nil, err
	}

	var rows []Assignment
	err = s.store.List(ctx, assignedFormDoctype, frappe.ListOptions{
		Filters: frappe.Filters{}.Eq("assigned_to", user),
		Limit:   listLimit,
	}, &rows)
	if err != nil {
		return nil, err
	}

	out := make([]AssignedForm, 0, len(rows))
	for _, a := range rows {
		label := a.Label
		if label == "" {
			label = a.FormDoctype
		}
		icon := a.Icon
		if icon == "" {
			icon = defaultIcon
		}
		out = append(out, AssignedForm{
			Name:       a.Name,
			Doctype:    a.FormDoctype,
			Label:      label,
			Icon:       icon,
			AssignedTo: a.AssignedTo,
		})
	}
	return out, nil
}

// DocTypeMeta returns projected fields plus recent records of a DocType for
// mobile form rendering. A failure fetching records degrades to an empty
// record list; the field metadata is still served.
func (s *Service) DocTypeMeta(ctx context.Context, doctype string) (DocTypeMeta, error) {
	doctype = strings.TrimSpace(doctype)
	if doctype == "" {
		return DocTypeMeta{}, invalidf("doctype is required")
	}

	fields, err := s.DocTypeFields(ctx, doctype)
	if err != nil {
		return DocTypeMeta{}, err
	}

	var records []map[string]any
	if err := s.store.List(ctx, doctype, frappe.ListOptions{Limit: 100}, &records); err != nil {
		records = nil
	}
	if records == nil {
		records = []map[string]any{}
	}

	return DocTypeMeta{
		Doctype:     doctype,
		Module:      fields.Module,
		Fields:      fields.Fields,
		Records:     records,
		RecordCount: len(records),
	}, nil
}
