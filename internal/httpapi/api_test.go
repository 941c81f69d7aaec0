package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// fakeFrappe is an in-memory stand-in for the upstream resource API. It
// implements just enough of the /api/resource and /api/method surface for
// the gateway: filtered lists, get/create/update/delete by name, and the
// logged-user method.
type fakeFrappe struct {
	mu           sync.Mutex
	records      map[string][]map[string]any
	seq          int
	loggedUser   string
	failIdentity bool
	lastAuth     string
}

func newFakeFrappe() *fakeFrappe {
	return &fakeFrappe{
		records:    make(map[string][]map[string]any),
		loggedUser: "admin@example.com",
	}
}

func (f *fakeFrappe) seed(doctype string, doc map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := doc["name"]; !ok {
		f.seq++
		doc["name"] = fmt.Sprintf("%s-%04d", strings.ToUpper(doctype[:2]), f.seq)
	}
	f.records[doctype] = append(f.records[doctype], doc)
}

func (f *fakeFrappe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuth = r.Header.Get("Authorization")

	if r.URL.Path == "/api/method/frappe.auth.get_logged_user" {
		if f.failIdentity {
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "identity endpoint unavailable"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": f.loggedUser})
		return
	}

	rest, ok := strings.CutPrefix(r.URL.Path, "/api/resource/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	doctypePart, namePart, hasName := strings.Cut(rest, "/")
	doctype, _ := url.PathUnescape(doctypePart)
	name, _ := url.PathUnescape(namePart)

	switch {
	case !hasName && r.Method == http.MethodGet:
		f.list(w, r, doctype)
	case !hasName && r.Method == http.MethodPost:
		f.create(w, r, doctype)
	case hasName && r.Method == http.MethodGet:
		f.get(w, doctype, name)
	case hasName && r.Method == http.MethodPut:
		f.update(w, r, doctype, name)
	case hasName && r.Method == http.MethodDelete:
		f.delete(w, doctype, name)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeFrappe) list(w http.ResponseWriter, r *http.Request, doctype string) {
	var filters [][3]any
	if raw := r.URL.Query().Get("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid filters"})
			return
		}
	}

	out := make([]map[string]any, 0)
	for _, doc := range f.records[doctype] {
		if matchesFilters(doc, filters) {
			out = append(out, doc)
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": out})
}

func matchesFilters(doc map[string]any, filters [][3]any) bool {
	for _, cond := range filters {
		field, _ := cond[0].(string)
		op, _ := cond[1].(string)
		got := fmt.Sprint(doc[field])
		want := fmt.Sprint(cond[2])
		switch op {
		case "=":
			if got != want {
				return false
			}
		case "like":
			if !strings.Contains(got, strings.Trim(want, "%")) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func (f *fakeFrappe) create(w http.ResponseWriter, r *http.Request, doctype string) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.seq++
	doc["name"] = fmt.Sprintf("%s-%04d", strings.ToUpper(strings.ReplaceAll(doctype, " ", "")), f.seq)
	doc["creation"] = "2026-03-01 10:00:00.000000"
	f.records[doctype] = append(f.records[doctype], doc)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": doc})
}

func (f *fakeFrappe) get(w http.ResponseWriter, doctype, name string) {
	for _, doc := range f.records[doctype] {
		if fmt.Sprint(doc["name"]) == name {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": doc})
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": doctype + " " + name + " not found"})
}

func (f *fakeFrappe) update(w http.ResponseWriter, r *http.Request, doctype, name string) {
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	for _, doc := range f.records[doctype] {
		if fmt.Sprint(doc["name"]) == name {
			for k, v := range patch {
				doc[k] = v
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": doc})
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
}

func (f *fakeFrappe) delete(w http.ResponseWriter, doctype, name string) {
	docs := f.records[doctype]
	for i, doc := range docs {
		if fmt.Sprint(doc["name"]) == name {
			f.records[doctype] = append(docs[:i:i], docs[i+1:]...)
			w.WriteHeader(http.StatusAccepted)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
}

// apiClient drives the gateway over a real listener, forwarding the upstream
// side-channel headers the way the admin UI does.
type apiClient struct {
	t        *testing.T
	baseURL  string
	client   *http.Client
	upstream *fakeFrappe

	upstreamHeaderValue string
	omitAuth            bool
	omitUpstream        bool
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()

	upstream := newFakeFrappe()
	upSrv := httptest.NewServer(upstream)
	t.Cleanup(upSrv.Close)

	api := New(Options{
		Version:    "test",
		RateBurst:  1000,
		RatePerSec: 1000,
	})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{
		t:                   t,
		baseURL:             srv.URL,
		client:              srv.Client(),
		upstream:            upstream,
		upstreamHeaderValue: upSrv.URL + "|||key:secret",
	}
}

func (c *apiClient) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !c.omitAuth {
		req.Header.Set("Authorization", "token key:secret")
	}
	if !c.omitUpstream {
		req.Header.Set(upstreamHeader, c.upstreamHeaderValue)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

func decode[T any](t *testing.T, r *http.Response) T {
	t.Helper()
	defer r.Body.Close()
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}
