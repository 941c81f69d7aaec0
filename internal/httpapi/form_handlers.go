package httpapi

import (
	"net/http"
	"strings"
)

// handleForms serves the aggregated form catalog.
func (a *API) handleForms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	catalog, err := svc.Catalog(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

// handleFormResource serves the saved form config at /v1/forms/{id},
// including its share list.
func (a *API) handleFormResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/forms/")
	id = strings.TrimSuffix(id, "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	form, err := svc.FormDetail(r.Context(), id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}
