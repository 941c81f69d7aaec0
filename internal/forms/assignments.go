package forms

import (
	"context"
	"errors"
	"strings"

	"formgate.org/internal/frappe"
)

// CreateAssignmentInput is the payload for assigning a form to a user.
type CreateAssignmentInput struct {
	Doctype    string `json:"doctype"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	AssignedTo string `json:"assigned_to"`
}

// assignmentDoc is the write shape of an Assigned Form record.
type assignmentDoc struct {
	FormDoctype string `json:"form_doctype"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	AssignedTo  string `json:"assigned_to"`
}

// Assignments lists assignment records, optionally restricted to one target
// DocType.
func (s *Service) Assignments(ctx context.Context, doctype string) ([]Assignment, error) {
	var filters frappe.Filters
	if doctype = strings.TrimSpace(doctype); doctype != "" {
		filters = filters.Eq("form_doctype", doctype)
	}
	var rows []Assignment
	if err := s.store.List(ctx, assignedFormDoctype, frappe.ListOptions{Filters: filters, Limit: listLimit}, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Assignment{}
	}
	return rows, nil
}

// AssignForm grants a form to a user. The (doctype, user) pair is unique:
// a second grant for an existing pair fails with ErrAlreadyExists instead of
// silently producing a duplicate record.
func (s *Service) AssignForm(ctx context.Context, in CreateAssignmentInput) (Assignment, error) {
	doctype := strings.TrimSpace(in.Doctype)
	assignedTo := strings.TrimSpace(in.AssignedTo)
	if doctype == "" {
		return Assignment{}, invalidf("doctype is required")
	}
	if assignedTo == "" {
		return Assignment{}, invalidf("assigned_to is required")
	}

	if _, err := s.lookupAssignment(ctx, doctype, assignedTo); err == nil {
		return Assignment{}, conflictf("%q is already assigned to %q", doctype, assignedTo)
	} else if !errors.Is(err, ErrNotFound) {
		return Assignment{}, err
	}

	doc := assignmentDoc{
		FormDoctype: doctype,
		Label:       in.Label,
		Icon:        in.Icon,
		AssignedTo:  assignedTo,
	}
	if doc.Label == "" {
		doc.Label = doctype
	}
	if doc.Icon == "" {
		doc.Icon = defaultIcon
	}

	var created Assignment
	if err := s.store.Create(ctx, assignedFormDoctype, doc, &created); err != nil {
		return Assignment{}, err
	}
	return created, nil
}

// UnassignForm removes the grant identified by its natural key. The store
// deletes by opaque id only, so this resolves the key with a filtered lookup
// first and fails with ErrNotFound when no record matches.
func (s *Service) UnassignForm(ctx context.Context, doctype, assignedTo string) error {
	doctype = strings.TrimSpace(doctype)
	assignedTo = strings.TrimSpace(assignedTo)
	if doctype == "" || assignedTo == "" {
		return invalidf("doctype and assigned_to are required")
	}

	rec, err := s.lookupAssignment(ctx, doctype, assignedTo)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, assignedFormDoctype, rec.Name)
}

func (s *Service) lookupAssignment(ctx context.Context, doctype, assignedTo string) (Assignment, error) {
	var rows []Assignment
	err := s.store.List(ctx, assignedFormDoctype, frappe.ListOptions{
		Filters: frappe.Filters{}.Eq("form_doctype", doctype).Eq("assigned_to", assignedTo),
		Fields:  []string{"name"},
	}, &rows)
	if err != nil {
		return Assignment{}, err
	}
	if len(rows) == 0 {
		return Assignment{}, notFoundf("no assignment of %q for %q", doctype, assignedTo)
	}
	return rows[0], nil
}
