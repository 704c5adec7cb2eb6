package domain

// Section is a top-level area of the publisher console.
type Section struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Path  string `json:"path"`
	// Roles restricts the section; nil means every role may open it.
	Roles []Role `json:"roles,omitempty"`
}

var sections = []Section{
	{Name: "dashboard", Title: "Dashboard", Path: "/dashboard"},
	{Name: "apps", Title: "Apps", Path: "/apps"},
	{Name: "analytics", Title: "Analytics", Path: "/analytics",
		Roles: []Role{RoleAdmin, RoleExecutive, RoleAnalyst, RoleProductManager}},
	{Name: "marketing", Title: "Marketing", Path: "/marketing",
		Roles: []Role{RoleAdmin, RoleExecutive, RoleMarketingManager, RoleAnalyst}},
	{Name: "business", Title: "Business", Path: "/business",
		Roles: []Role{RoleAdmin, RoleExecutive, RoleBusinessManager, RoleAnalyst}},
	{Name: "users", Title: "Users", Path: "/users",
		Roles: []Role{RoleAdmin}},
	{Name: "profile", Title: "Profile", Path: "/profile"},
}

// Sections returns every console section in navigation order.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.clone()
	}
	return out
}

// FindSection looks a section up by name.
func FindSection(name string) (Section, error) {
	for _, s := range sections {
		if s.Name == name {
			return s.clone(), nil
		}
	}
	return Section{}, ErrUnknownSection
}

// clone copies s so callers cannot edit the shared role table.
func (s Section) clone() Section {
	if s.Roles != nil {
		s.Roles = append([]Role(nil), s.Roles...)
	}
	return s
}

// Allows reports whether role may open the section.
func (s Section) Allows(role Role) bool {
	if s.Roles == nil {
		return true
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// VisibleSections filters the navigation down to what role may open.
func VisibleSections(role Role) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.Allows(role) {
			out = append(out, s.clone())
		}
	}
	return out
}
