package httpapi

import (
	"net/http"
	"strings"

	"formgate.org/internal/forms"
	"formgate.org/internal/frappe"
)

// upstreamHeader carries the upstream base address and credential pair as a
// single composite value: "<base-url>|||<credentials>".
const (
	upstreamHeader    = "X-Erpnext-Url"
	upstreamSeparator = "|||"
)

// service resolves the per-request upstream wiring. The Authorization value
// is forwarded verbatim; its absence is a 401. A missing or malformed
// composite header is a 400. On failure the response has already been
// written and ok is false.
func (a *API) service(w http.ResponseWriter, r *http.Request) (*forms.Service, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		writeError(w, r, http.StatusUnauthorized, "missing credentials")
		return nil, false
	}

	baseURL, credentials, ok := strings.Cut(r.Header.Get(upstreamHeader), upstreamSeparator)
	baseURL = strings.TrimSpace(baseURL)
	if !ok || baseURL == "" || strings.TrimSpace(credentials) == "" {
		writeError(w, r, http.StatusBadRequest, "missing ERPNext configuration")
		return nil, false
	}

	client := frappe.New(baseURL, authz, a.upstreamHTTP)
	return forms.NewService(client), true
}
