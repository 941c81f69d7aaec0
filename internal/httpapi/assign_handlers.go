package httpapi

import (
	"net/http"

	"formgate.org/internal/audit"
	"formgate.org/internal/forms"
)

func (a *API) handleAssign(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listAssignments(w, r)
	case http.MethodPost:
		a.createAssignment(w, r)
	case http.MethodDelete:
		a.deleteAssignment(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodDelete)
	}
}

func (a *API) listAssignments(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	assignments, err := svc.Assignments(r.Context(), r.URL.Query().Get("doctype"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (a *API) createAssignment(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}

	var req forms.CreateAssignmentInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, err := svc.AssignForm(r.Context(), req)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	audit.Event(r.Context(), "forms.assign", "", map[string]string{
		"doctype":     created.FormDoctype,
		"assigned_to": created.AssignedTo,
	})
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}

	doctype := r.URL.Query().Get("doctype")
	assignedTo := r.URL.Query().Get("assigned_to")
	if err := svc.UnassignForm(r.Context(), doctype, assignedTo); err != nil {
		handleDomainError(w, r, err)
		return
	}

	audit.Event(r.Context(), "forms.unassign", "", map[string]string{
		"doctype":     doctype,
		"assigned_to": assignedTo,
	})
	w.WriteHeader(http.StatusNoContent)
}
