package forms

import (
	"context"
	"strings"

	"formgate.org/internal/frappe"
)

type userRecord struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	UserImage string `json:"user_image"`
}

// Users lists enabled upstream accounts, optionally substring-filtered by
// query. Avatar paths are made absolute against the upstream base URL.
func (s *Service) Users(ctx context.Context, query string) ([]User, error) {
	filters := frappe.Filters{}.Eq("enabled", 1)
	if query = strings.TrimSpace(query); query != "" {
		filters = filters.Like("name", "%"+query+"%")
	}

	var rows []userRecord
	err := s.store.List(ctx, "User", frappe.ListOptions{
		Fields:  []string{"name", "full_name", "user_image", "email"},
		Filters: filters,
		Limit:   50,
	}, &rows)
	if err != nil {
		return nil, err
	}

	users := make([]User, 0, len(rows))
	for _, u := range rows {
		fullName := u.FullName
		if fullName == "" {
			fullName = u.Name
		}
		image := ""
		if u.UserImage != "" {
			image = s.store.BaseURL() + u.UserImage
		}
		users = append(users, User{
			Email:     u.Name,
			FullName:  fullName,
			UserImage: image,
		})
	}
	return users, nil
}
