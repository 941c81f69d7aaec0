// Package frappe is a thin client for the Frappe/ERPNext resource API.
// Every call is attempted exactly once; transient upstream failures surface
// directly to the caller.
package frappe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"formgate.org/internal/obs"
)

const maxErrorBody = 64 << 10

// Client talks to one upstream instance on behalf of one caller. It is cheap
// to construct; handlers build a fresh one per request from the side-channel
// headers and share the underlying http.Client.
type Client struct {
	baseURL       string
	authorization string
	hc            *http.Client
}

// New creates a client for the given upstream base URL. The authorization
// value is forwarded verbatim on every call; hc may be nil, in which case
// http.DefaultClient is used.
func New(baseURL, authorization string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		authorization: authorization,
		hc:            hc,
	}
}

// BaseURL returns the upstream base address, without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// ListOptions narrows a resource listing.
type ListOptions struct {
	Filters Filters
	Fields  []string // defaults to ["*"]
	Limit   int      // limit_page_length; upstream default applies when 0
}

// List fetches resource records of the given doctype into out, which must be
// a pointer to a slice.
func (c *Client) List(ctx context.Context, doctype string, opt ListOptions, out any) error {
	fields := opt.Fields
	if len(fields) == 0 {
		fields = []string{"*"}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("frappe: encode fields: %w", err)
	}

	q := url.Values{}
	q.Set("fields", string(fieldsJSON))
	q.Set("filters", opt.Filters.Encode())
	if opt.Limit > 0 {
		q.Set("limit_page_length", strconv.Itoa(opt.Limit))
	}

	u := c.resourceURL(doctype, "") + "?" + q.Encode()
	return c.do(ctx, http.MethodGet, u, nil, &dataEnvelope{Data: out})
}

// Get fetches a single record by its store-assigned name.
func (c *Client) Get(ctx context.Context, doctype, name string, out any) error {
	return c.do(ctx, http.MethodGet, c.resourceURL(doctype, name), nil, &dataEnvelope{Data: out})
}

// Create inserts a new record. The created document is decoded into out when
// out is non-nil.
func (c *Client) Create(ctx context.Context, doctype string, doc, out any) error {
	if out == nil {
		return c.do(ctx, http.MethodPost, c.resourceURL(doctype, ""), doc, nil)
	}
	return c.do(ctx, http.MethodPost, c.resourceURL(doctype, ""), doc, &dataEnvelope{Data: out})
}

// Update overwrites the given fields of an existing record, addressed by its
// store-assigned name.
func (c *Client) Update(ctx context.Context, doctype, name string, patch, out any) error {
	if out == nil {
		return c.do(ctx, http.MethodPut, c.resourceURL(doctype, name), patch, nil)
	}
	return c.do(ctx, http.MethodPut, c.resourceURL(doctype, name), patch, &dataEnvelope{Data: out})
}

// Delete removes a record by its store-assigned name.
func (c *Client) Delete(ctx context.Context, doctype, name string) error {
	return c.do(ctx, http.MethodDelete, c.resourceURL(doctype, name), nil, nil)
}

// LoggedUser resolves the identity behind the forwarded credential via the
// upstream "who am I" method.
func (c *Client) LoggedUser(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	u := c.baseURL + "/api/method/frappe.auth.get_logged_user"
	if err := c.do(ctx, http.MethodGet, u, nil, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "", &APIError{StatusCode: http.StatusBadGateway, Message: "upstream returned no logged-in user"}
	}
	return resp.Message, nil
}

func (c *Client) resourceURL(doctype, name string) string {
	u := c.baseURL + "/api/resource/" + url.PathEscape(doctype)
	if name != "" {
		u += "/" + url.PathEscape(name)
	}
	return u
}

// dataEnvelope matches the {"data": …} wrapper the resource API uses.
type dataEnvelope struct {
	Data any `json:"data"`
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("frappe: encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("frappe: build request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		obs.ObserveUpstream(method, 0)
		return fmt.Errorf("frappe: %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	obs.ObserveUpstream(method, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("frappe: decode response: %w", err)
	}
	return nil
}
