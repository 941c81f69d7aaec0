package httpapi

import (
	"fmt"
	"net/http"
	"time"
)

func (a *API) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "formgate-api",
		"version": a.version,
	})
}

// ready pings the default upstream when one is configured; a gateway with no
// fixed upstream is always ready since every request carries its own.
func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	if a.defaultUpstreamURL != "" {
		req, err := http.NewRequestWithContext(r.Context(), http.MethodGet,
			a.defaultUpstreamURL+"/api/method/ping", nil)
		if err == nil {
			var resp *http.Response
			resp, err = a.upstreamHTTP.Do(req)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode >= 400 {
					err = fmt.Errorf("upstream ping returned status %d", resp.StatusCode)
				}
			}
		}
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "formgate-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
