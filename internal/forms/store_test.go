package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"formgate.org/internal/frappe"
)

// fakeStore scripts the upstream store per test. Unset hooks fall back to
// empty lists, 404 gets, echo creates, and a fixed logged-in user. Every
// write is recorded so tests can assert nothing was written.
type fakeStore struct {
	listFn       func(doctype string, opt frappe.ListOptions) (any, error)
	getFn        func(doctype, name string) (any, error)
	createFn     func(doctype string, doc any) (any, error)
	updateFn     func(doctype, name string, patch any) (any, error)
	deleteFn     func(doctype, name string) error
	loggedUserFn func() (string, error)

	writes []string
}

func (f *fakeStore) List(_ context.Context, doctype string, opt frappe.ListOptions, out any) error {
	if f.listFn == nil {
		return setOut(out, []any{})
	}
	rows, err := f.listFn(doctype, opt)
	if err != nil {
		return err
	}
	return setOut(out, rows)
}

func (f *fakeStore) Get(_ context.Context, doctype, name string, out any) error {
	if f.getFn == nil {
		return &frappe.APIError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
	doc, err := f.getFn(doctype, name)
	if err != nil {
		return err
	}
	return setOut(out, doc)
}

func (f *fakeStore) Create(_ context.Context, doctype string, doc, out any) error {
	f.writes = append(f.writes, "create "+doctype)
	if f.createFn == nil {
		return setOut(out, doc)
	}
	created, err := f.createFn(doctype, doc)
	if err != nil {
		return err
	}
	return setOut(out, created)
}

func (f *fakeStore) Update(_ context.Context, doctype, name string, patch, out any) error {
	f.writes = append(f.writes, fmt.Sprintf("update %s/%s", doctype, name))
	if f.updateFn == nil {
		return setOut(out, patch)
	}
	updated, err := f.updateFn(doctype, name, patch)
	if err != nil {
		return err
	}
	return setOut(out, updated)
}

func (f *fakeStore) Delete(_ context.Context, doctype, name string) error {
	f.writes = append(f.writes, fmt.Sprintf("delete %s/%s", doctype, name))
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(doctype, name)
}

func (f *fakeStore) LoggedUser(context.Context) (string, error) {
	if f.loggedUserFn == nil {
		return "admin@example.com", nil
	}
	return f.loggedUserFn()
}

func (f *fakeStore) BaseURL() string { return "https://erp.example.com" }

func setOut(out, v any) error {
	if out == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// filterValue returns the value of the first filter condition on field, and
// whether one exists.
func filterValue(filters frappe.Filters, field string) (any, bool) {
	for _, cond := range filters {
		if cond[0] == field {
			return cond[2], true
		}
	}
	return nil, false
}

func newTestService(t *testing.T, store *fakeStore) *Service {
	t.Helper()
	return NewService(store)
}
