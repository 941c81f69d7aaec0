package httpapi

import (
	"net/http"
	"strings"
)

func (a *API) handleDocTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	doctypes, err := svc.DocTypes(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doctypes)
}

// handleDocTypeResource serves /v1/doctypes/{name} and
// /v1/doctypes/{name}/fields, both returning the projected field set.
func (a *API) handleDocTypeResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/v1/doctypes/")
	name = strings.TrimSuffix(name, "/fields")
	name = strings.TrimSuffix(name, "/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	fields, err := svc.DocTypeFields(r.Context(), name)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}
