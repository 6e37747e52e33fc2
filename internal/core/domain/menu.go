package domain

import "encoding/json"

// MenuEntry is one navigation item. Entries are derived from the policy
// table on every render and never mutated.
type MenuEntry struct {
	Route        RouteKey
	Label        string
	Icon         string
	AllowedRoles RoleSet
}

func (m MenuEntry) MarshalJSON() ([]byte, error) {
	roles := make([]string, 0, 3)
	for _, r := range m.AllowedRoles.Roles() {
		roles = append(roles, r.String())
	}
	return json.Marshal(struct {
		Path  string   `json:"path"`
		Label string   `json:"label"`
		Icon  string   `json:"icon"`
		Roles []string `json:"roles"`
	}{m.Route.Path(), m.Label, m.Icon, roles})
}
