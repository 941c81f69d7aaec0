package forms

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"formgate.org/internal/frappe"
)

func customerSchema(fields []Field) func(doctype, name string) (any, error) {
	return func(doctype, name string) (any, error) {
		if doctype == "DocType" && name == "Customer" {
			return docTypeSchema{Name: "Customer", Module: "Selling", Fields: fields}, nil
		}
		return nil, &frappe.APIError{StatusCode: http.StatusNotFound, Message: "Not Found"}
	}
}

func TestDocTypeFieldsDropsStructuralKinds(t *testing.T) {
	store := &fakeStore{getFn: customerSchema([]Field{
		{Fieldname: "customer_name", Fieldtype: "Data"},
		{Fieldname: "sb1", Fieldtype: "Section Break"},
	})}
	svc := newTestService(t, store)

	out, err := svc.DocTypeFields(context.Background(), "Customer")
	require.NoError(t, err)
	require.Equal(t, "Customer", out.Doctype)
	require.Equal(t, "Selling", out.Module)
	require.Len(t, out.Fields, 1)
	require.Equal(t, "customer_name", out.Fields[0].Fieldname)
}

func TestDocTypeFieldsMajorityStructuralSchema(t *testing.T) {
	store := &fakeStore{getFn: customerSchema([]Field{
		{Fieldname: "sb1", Fieldtype: "Section Break"},
		{Fieldname: "cb1", Fieldtype: "Column Break"},
		{Fieldname: "html1", Fieldtype: "HTML"},
		{Fieldname: "items", Fieldtype: "Table"},
		{Fieldname: "h1", Fieldtype: "Heading"},
		{Fieldname: "territory", Fieldtype: "Link"},
		{Fieldname: "sb2", Fieldtype: "Section Break"},
	})}
	svc := newTestService(t, store)

	out, err := svc.DocTypeFields(context.Background(), "Customer")
	require.NoError(t, err)
	require.Len(t, out.Fields, 1)
	for _, f := range out.Fields {
		require.NotContains(t, []string{"Section Break", "Column Break", "HTML", "Table", "Heading"}, f.Fieldtype)
	}
}

func TestDocTypeFieldsDropsHiddenFields(t *testing.T) {
	store := &fakeStore{getFn: customerSchema([]Field{
		{Fieldname: "customer_name", Fieldtype: "Data"},
		{Fieldname: "internal_flag", Fieldtype: "Check", Hidden: 1},
	})}
	svc := newTestService(t, store)

	out, err := svc.DocTypeFields(context.Background(), "Customer")
	require.NoError(t, err)
	require.Len(t, out.Fields, 1)
	require.Equal(t, "customer_name", out.Fields[0].Fieldname)
}

func TestDocTypeFieldsPreservesUpstreamOrder(t *testing.T) {
	store := &fakeStore{getFn: customerSchema([]Field{
		{Fieldname: "zzz", Fieldtype: "Data"},
		{Fieldname: "sb1", Fieldtype: "Section Break"},
		{Fieldname: "aaa", Fieldtype: "Data"},
		{Fieldname: "mmm", Fieldtype: "Select"},
	})}
	svc := newTestService(t, store)

	out, err := svc.DocTypeFields(context.Background(), "Customer")
	require.NoError(t, err)
	names := make([]string, 0, len(out.Fields))
	for _, f := range out.Fields {
		names = append(names, f.Fieldname)
	}
	require.Equal(t, []string{"zzz", "aaa", "mmm"}, names)
}

func TestDocTypeFieldsUnknownDoctype(t *testing.T) {
	svc := newTestService(t, &fakeStore{})
	_, err := svc.DocTypeFields(context.Background(), "Nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDocTypeFieldsEmptyName(t *testing.T) {
	svc := newTestService(t, &fakeStore{})
	_, err := svc.DocTypeFields(context.Background(), "  ")
	require.ErrorIs(t, err, ErrValidation)
}

func TestDocTypesAppliesDefaults(t *testing.T) {
	store := &fakeStore{listFn: func(doctype string, opt frappe.ListOptions) (any, error) {
		require.Equal(t, "DocType", doctype)
		if _, ok := filterValue(opt.Filters, "issingle"); !ok {
			t.Fatal("expected issingle filter")
		}
		return []DocTypeInfo{
			{Name: "Customer", Module: "Selling", Icon: "users"},
			{Name: "Widget"},
		}, nil
	}}
	svc := newTestService(t, store)

	doctypes, err := svc.DocTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, doctypes, 2)
	require.Equal(t, "Custom", doctypes[1].Module)
	require.Equal(t, "file-text", doctypes[1].Icon)
}
