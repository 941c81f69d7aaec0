package forms

import (
	"context"
	"errors"
	"strings"

	"formgate.org/internal/frappe"
)

// Permissions form a closed set; anything else is rejected before it reaches
// the store.
const (
	PermissionView   = "view"
	PermissionEdit   = "edit"
	PermissionSubmit = "submit"
)

var validPermissions = map[string]struct{}{
	PermissionView:   {},
	PermissionEdit:   {},
	PermissionSubmit: {},
}

// shareRecord is the stored shape of a Mobile Form Share.
type shareRecord struct {
	Name       string `json:"name"`
	FormID     string `json:"form_id"`
	SharedWith string `json:"shared_with"`
	Permission string `json:"permission"`
	SharedBy   string `json:"shared_by"`
	Creation   string `json:"creation"`
}

func (r shareRecord) project() Share {
	return Share{
		SharedWith: r.SharedWith,
		Permission: r.Permission,
		SharedAt:   r.Creation,
		SharedBy:   r.SharedBy,
	}
}

// Shares lists all shares of one form.
func (s *Service) Shares(ctx context.Context, formID string) ([]Share, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, invalidf("form_id is required")
	}
	rows, err := s.listShareRecords(ctx, frappe.Filters{}.Eq("form_id", formID), nil)
	if err != nil {
		return nil, err
	}
	shares := make([]Share, 0, len(rows))
	for _, r := range rows {
		shares = append(shares, r.project())
	}
	return shares, nil
}

// ShareForm grants a user access to a form. The acting user is resolved from
// the forwarded credential before anything is written; shared_by records that
// identity. A second share for the same (form, user) pair fails with
// ErrAlreadyExists.
func (s *Service) ShareForm(ctx context.Context, formID, sharedWith, permission string) (Share, error) {
	formID = strings.TrimSpace(formID)
	sharedWith = strings.TrimSpace(sharedWith)
	if formID == "" {
		return Share{}, invalidf("form_id is required")
	}
	if sharedWith == "" {
		return Share{}, invalidf("shared_with is required")
	}
	if permission == "" {
		permission = PermissionView
	}
	if _, ok := validPermissions[permission]; !ok {
		return Share{}, invalidf("permission must be one of view, edit, submit")
	}

	actor, err := s.store.LoggedUser(ctx)
	if err != nil {
		return Share{}, err
	}

	if _, err := s.lookupShare(ctx, formID, sharedWith); err == nil {
		return Share{}, conflictf("form %q is already shared with %q", formID, sharedWith)
	} else if !errors.Is(err, ErrNotFound) {
		return Share{}, err
	}

	doc := map[string]string{
		"form_id":     formID,
		"shared_with": sharedWith,
		"permission":  permission,
		"shared_by":   actor,
	}
	var created shareRecord
	if err := s.store.Create(ctx, formShareDoctype, doc, &created); err != nil {
		return Share{}, err
	}
	return created.project(), nil
}

// UpdateShare overwrites the permission of an existing share, addressed by
// its natural key. Only the permission field changes.
func (s *Service) UpdateShare(ctx context.Context, formID, user, permission string) (Share, error) {
	formID = strings.TrimSpace(formID)
	user = strings.TrimSpace(user)
	if formID == "" || user == "" {
		return Share{}, invalidf("form_id and user are required")
	}
	if _, ok := validPermissions[permission]; !ok {
		return Share{}, invalidf("permission must be one of view, edit, submit")
	}

	if _, err := s.store.LoggedUser(ctx); err != nil {
		return Share{}, err
	}

	rec, err := s.lookupShare(ctx, formID, user)
	if err != nil {
		return Share{}, err
	}

	var updated shareRecord
	if err := s.store.Update(ctx, formShareDoctype, rec.Name, map[string]string{"permission": permission}, &updated); err != nil {
		return Share{}, err
	}
	return updated.project(), nil
}

// RevokeShare removes the share identified by its natural key, failing with
// ErrNotFound when no record matches.
func (s *Service) RevokeShare(ctx context.Context, formID, user string) error {
	formID = strings.TrimSpace(formID)
	user = strings.TrimSpace(user)
	if formID == "" || user == "" {
		return invalidf("form_id and user are required")
	}

	if _, err := s.store.LoggedUser(ctx); err != nil {
		return err
	}

	rec, err := s.lookupShare(ctx, formID, user)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, formShareDoctype, rec.Name)
}

func (s *Service) lookupShare(ctx context.Context, formID, user string) (shareRecord, error) {
	rows, err := s.listShareRecords(ctx,
		frappe.Filters{}.Eq("form_id", formID).Eq("shared_with", user),
		[]string{"name"})
	if err != nil {
		return shareRecord{}, err
	}
	if len(rows) == 0 {
		return shareRecord{}, notFoundf("no share of form %q for %q", formID, user)
	}
	return rows[0], nil
}

func (s *Service) listShareRecords(ctx context.Context, filters frappe.Filters, fields []string) ([]shareRecord, error) {
	var rows []shareRecord
	err := s.store.List(ctx, formShareDoctype, frappe.ListOptions{
		Filters: filters,
		Fields:  fields,
		Limit:   listLimit,
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
