package forms

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"formgate.org/internal/frappe"
)

// formConfigRecord is the stored shape of a Mobile Form Config. The field and
// section layouts are kept as JSON text upstream.
type formConfigRecord struct {
	Name           string `json:"name"`
	FormName       string `json:"form_name"`
	Description    string `json:"description"`
	DoctypeLink    string `json:"doctype_link"`
	Icon           string `json:"icon"`
	Owner          string `json:"owner"`
	Creation       string `json:"creation"`
	Modified       string `json:"modified"`
	FieldsConfig   string `json:"fields_config"`
	SectionsConfig string `json:"sections_config"`
}

// FormDetail fetches a saved form layout by id and attaches its share list.
func (s *Service) FormDetail(ctx context.Context, id string) (FormConfig, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return FormConfig{}, invalidf("form id is required")
	}

	var rec formConfigRecord
	if err := s.store.Get(ctx, formConfigDoctype, id, &rec); err != nil {
		var apiErr *frappe.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return FormConfig{}, notFoundf("form %q not found", id)
		}
		return FormConfig{}, err
	}

	sharing, err := s.Shares(ctx, id)
	if err != nil {
		return FormConfig{}, err
	}

	return FormConfig{
		ID:          rec.Name,
		Name:        rec.FormName,
		Description: rec.Description,
		Doctype:     rec.DoctypeLink,
		Icon:        rec.Icon,
		Owner:       rec.Owner,
		CreatedAt:   rec.Creation,
		ModifiedAt:  rec.Modified,
		Fields:      layoutJSON(rec.FieldsConfig),
		Sections:    layoutJSON(rec.SectionsConfig),
		Sharing:     sharing,
	}, nil
}

// layoutJSON passes a stored layout blob through when it is valid JSON and
// degrades to an empty list otherwise, so a corrupt config cannot break the
// whole detail response.
func layoutJSON(stored string) json.RawMessage {
	stored = strings.TrimSpace(stored)
	if stored == "" || !json.Valid([]byte(stored)) {
		return json.RawMessage("[]")
	}
	return json.RawMessage(stored)
}
