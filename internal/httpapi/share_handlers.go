package httpapi

import (
	"net/http"

	"formgate.org/internal/audit"
)

type createShareRequest struct {
	FormID     string `json:"form_id"`
	SharedWith string `json:"shared_with"`
	Permission string `json:"permission"`
}

func (a *API) handleShare(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listShares(w, r)
	case http.MethodPost:
		a.createShare(w, r)
	case http.MethodPut:
		a.updateShare(w, r)
	case http.MethodDelete:
		a.deleteShare(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) listShares(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}
	shares, err := svc.Shares(r.Context(), r.URL.Query().Get("form_id"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shares)
}

func (a *API) createShare(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}

	var req createShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	share, err := svc.ShareForm(r.Context(), req.FormID, req.SharedWith, req.Permission)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	audit.Event(r.Context(), "forms.share", share.SharedBy, map[string]string{
		"form_id":     req.FormID,
		"shared_with": share.SharedWith,
		"permission":  share.Permission,
	})
	writeJSON(w, http.StatusCreated, share)
}

func (a *API) updateShare(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	formID := q.Get("form_id")
	user := q.Get("user")
	permission := q.Get("permission")

	share, err := svc.UpdateShare(r.Context(), formID, user, permission)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	audit.Event(r.Context(), "forms.share.update", "", map[string]string{
		"form_id":    formID,
		"user":       user,
		"permission": share.Permission,
	})
	writeJSON(w, http.StatusOK, share)
}

func (a *API) deleteShare(w http.ResponseWriter, r *http.Request) {
	svc, ok := a.service(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	formID := q.Get("form_id")
	user := q.Get("user")

	if err := svc.RevokeShare(r.Context(), formID, user); err != nil {
		handleDomainError(w, r, err)
		return
	}

	audit.Event(r.Context(), "forms.share.revoke", "", map[string]string{
		"form_id": formID,
		"user":    user,
	})
	w.WriteHeader(http.StatusNoContent)
}
