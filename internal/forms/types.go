package forms

import "encoding/json"

// DocTypeInfo is the catalog-level view of an upstream DocType.
type DocTypeInfo struct {
	Name   string `json:"name"`
	Module string `json:"module"`
	Icon   string `json:"icon"`
}

// Field is a UI-safe descriptor projected from a DocType schema. Flag fields
// keep the upstream 0/1 encoding so clients see the values the store holds.
type Field struct {
	Fieldname        string `json:"fieldname"`
	Label            string `json:"label"`
	Fieldtype        string `json:"fieldtype"`
	Options          string `json:"options,omitempty"`
	Reqd             int    `json:"reqd"`
	Default          string `json:"default,omitempty"`
	ReadOnly         int    `json:"read_only"`
	Hidden           int    `json:"hidden"`
	InListView       int    `json:"in_list_view"`
	InStandardFilter int    `json:"in_standard_filter"`
	DependsOn        string `json:"depends_on,omitempty"`
}

// DocTypeFields is the Schema Projector output for one DocType.
type DocTypeFields struct {
	Doctype string  `json:"doctype"`
	Module  string  `json:"module"`
	Fields  []Field `json:"fields"`
}

// Assignment is one (DocType, user) grant as stored in an Assigned Form
// record. Name is the store-assigned id; the natural key is
// (FormDoctype, AssignedTo).
type Assignment struct {
	Name        string `json:"name"`
	FormDoctype string `json:"form_doctype"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	AssignedTo  string `json:"assigned_to"`
}

// CatalogEntry is one aggregated form in the admin catalog.
type CatalogEntry struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Doctype          string   `json:"doctype"`
	Icon             string   `json:"icon"`
	AssignedCount    int      `json:"assigned_count"`
	TotalAssignments int      `json:"total_assignments"`
	AssignedUsers    []string `json:"assigned_users"`
}

// Share is the ledger's projection of a Mobile Form Share record. SharedAt is
// the store's creation timestamp, passed through in upstream format.
type Share struct {
	SharedWith string `json:"shared_with"`
	Permission string `json:"permission"`
	SharedAt   string `json:"shared_at"`
	SharedBy   string `json:"shared_by"`
}

// FormConfig is a saved form layout with its share list attached.
type FormConfig struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Doctype     string          `json:"doctype"`
	Icon        string          `json:"icon"`
	Owner       string          `json:"owner"`
	CreatedAt   string          `json:"created_at"`
	ModifiedAt  string          `json:"modified_at"`
	Fields      json.RawMessage `json:"fields"`
	Sections    json.RawMessage `json:"sections"`
	Sharing     []Share         `json:"sharing"`
}

// User is a directory entry, filtered to enabled accounts upstream.
type User struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	UserImage string `json:"user_image,omitempty"`
}

// AssignedForm is the mobile view of one assignment for the acting user.
type AssignedForm struct {
	Name       string `json:"name"`
	Doctype    string `json:"doctype"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	AssignedTo string `json:"assigned_to"`
}

// DocTypeMeta bundles projected fields with recent records for mobile clients.
type DocTypeMeta struct {
	Doctype     string           `json:"doctype"`
	Module      string           `json:"module"`
	Fields      []Field          `json:"fields"`
	Records     []map[string]any `json:"records"`
	RecordCount int              `json:"record_count"`
}
