package httpapi

import "net/http"

// handleMobileAssignedForms lists forms for whoever the forwarded credential
// resolves to, not an admin-supplied user.
func (a *API) handleMobileAssignedForms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	assigned, err := svc.AssignedFormsForCaller(r.Context())
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assigned)
}

func (a *API) handleMobileDocTypeMeta(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	meta, err := svc.DocTypeMeta(r.Context(), r.URL.Query().Get("doctype"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}
