package httpapi

import "net/http"

func (a *API) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	users, err := svc.Users(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
