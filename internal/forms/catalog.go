package forms

import "context"

// Catalog lists every Assigned Form record and aggregates them into the
// admin-facing form catalog.
func (s *Service) Catalog(ctx context.Context) ([]CatalogEntry, error) {
	assignments, err := s.Assignments(ctx, "")
	if err != nil {
		return nil, err
	}
	return BuildCatalog(assignments), nil
}

// BuildCatalog groups assignment records by target DocType. Label and icon
// come from the first record seen for a DocType, falling back to the DocType
// name and the generic file icon. The assigned-user set is deduplicated, so
// repeated grants for the same user count toward total_assignments but not
// assigned_users. Entries keep the insertion order of first encounter.
func BuildCatalog(assignments []Assignment) []CatalogEntry {
	index := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	entries := make([]CatalogEntry, 0)

	for _, a := range assignments {
		key := a.FormDoctype
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			label := a.Label
			if label == "" {
				label = key
			}
			icon := a.Icon
			if icon == "" {
				icon = defaultIcon
			}
			entries = append(entries, CatalogEntry{
				ID:            key,
				Name:          label,
				Doctype:       key,
				Icon:          icon,
				AssignedUsers: []string{},
			})
			i = len(entries) - 1
			index[key] = i
			seen[key] = make(map[string]struct{})
		}

		entries[i].TotalAssignments++
		if a.AssignedTo == "" {
			continue
		}
		if _, dup := seen[key][a.AssignedTo]; dup {
			continue
		}
		seen[key][a.AssignedTo] = struct{}{}
		entries[i].AssignedUsers = append(entries[i].AssignedUsers, a.AssignedTo)
		entries[i].AssignedCount++
	}

	return entries
}
