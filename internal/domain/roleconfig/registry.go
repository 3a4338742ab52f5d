// Package roleconfig is the single source of truth for what each user role
// looks like and what it can navigate to. The registry is fixed at process
// start; lookups never fail and unknown roles fall back to the default role
// so navigation can never block rendering.
package roleconfig

// Role identifies one of the supported user roles.
type Role string

const (
	RolePatient  Role = "patient"
	RoleProvider Role = "provider"
	RoleFamily   Role = "family"
	RoleGuest    Role = "guest"
)

// DefaultRole is returned for any lookup of an unregistered role.
const DefaultRole = RolePatient

// Icon is a closed set of icon identifiers resolved by the presentation
// layer. The engine never depends on a rendering framework.
type Icon string

const (
	IconHome        Icon = "home"
	IconActivity    Icon = "activity"
	IconPill        Icon = "pill"
	IconUtensils    Icon = "utensils"
	IconBook        Icon = "book"
	IconBell        Icon = "bell"
	IconFileText    Icon = "file-text"
	IconUsers       Icon = "users"
	IconCalendar    Icon = "calendar"
	IconStethoscope Icon = "stethoscope"
	IconHeart       Icon = "heart"
	IconClipboard   Icon = "clipboard"
	IconMessage     Icon = "message"
	IconSearch      Icon = "search"
	IconDownload    Icon = "download"
	IconCompass     Icon = "compass"
)

// Theme holds opaque styling tokens for a role. Tokens are looked up,
// never computed.
type Theme struct {
	PrimaryColor       string `json:"primary_color"`
	Gradient           string `json:"gradient"`
	BackgroundGradient string `json:"background_gradient"`
	HoverBackground    string `json:"hover_background"`
}

// NavigationItem is one entry in a role's menu. Slice order drives menu
// order (first N visible, rest under More).
type NavigationItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  Icon   `json:"icon"`
}

// QuickAction is a shortcut shown on a role's dashboard.
type QuickAction struct {
	Label  string `json:"label"`
	Icon   Icon   `json:"icon"`
	Action string `json:"action"`
}

// Configuration is the full display configuration for one role.
type Configuration struct {
	Role         Role             `json:"role"`
	DisplayName  string           `json:"display_name"`
	Title        string           `json:"title"`
	Theme        Theme            `json:"theme"`
	Navigation   []NavigationItem `json:"navigation"`
	QuickActions []QuickAction    `json:"quick_actions"`
}

// roleOrder fixes the registry iteration order for role-switch UIs.
var roleOrder = []Role{RolePatient, RoleProvider, RoleFamily, RoleGuest}

var registry = map[Role]Configuration{
	RolePatient: {
		Role:        RolePatient,
		DisplayName: "Patient",
		Title:       "My Health",
		Theme: Theme{
			PrimaryColor:       "blue",
			Gradient:           "from-blue-500 to-cyan-500",
			BackgroundGradient: "from-blue-50 via-white to-cyan-50",
			HoverBackground:    "hover:bg-blue-50",
		},
		Navigation: []NavigationItem{
			{Label: "Dashboard", Path: "/patient/dashboard", Icon: IconHome},
			{Label: "Health Tracking", Path: "/patient/tracking", Icon: IconActivity},
			{Label: "Medications", Path: "/patient/medications", Icon: IconPill},
			{Label: "Meal Log", Path: "/patient/meals", Icon: IconUtensils},
			{Label: "Education", Path: "/patient/education", Icon: IconBook},
			{Label: "Alerts", Path: "/patient/alerts", Icon: IconBell},
			{Label: "Reports", Path: "/patient/reports", Icon: IconFileText},
		},
		QuickActions: []QuickAction{
			{Label: "Log a Meal", Icon: IconUtensils, Action: "log-meal"},
			{Label: "Record Vitals", Icon: IconHeart, Action: "record-vitals"},
			{Label: "Export My Data", Icon: IconDownload, Action: "export-data"},
		},
	},
	RoleProvider: {
		Role:        RoleProvider,
		DisplayName: "Provider",
		Title:       "Practice Overview",
		Theme: Theme{
			PrimaryColor:       "emerald",
			Gradient:           "from-emerald-500 to-teal-500",
			BackgroundGradient: "from-emerald-50 via-white to-teal-50",
			HoverBackground:    "hover:bg-emerald-50",
		},
		Navigation: []NavigationItem{
			{Label: "Dashboard", Path: "/provider/dashboard", Icon: IconHome},
			{Label: "Patients", Path: "/provider/patients", Icon: IconUsers},
			{Label: "Appointments", Path: "/provider/appointments", Icon: IconCalendar},
			{Label: "Clinical Notes", Path: "/provider/notes", Icon: IconClipboard},
			{Label: "Messages", Path: "/provider/messages", Icon: IconMessage},
			{Label: "Reports", Path: "/provider/reports", Icon: IconFileText},
		},
		QuickActions: []QuickAction{
			{Label: "Find Patient", Icon: IconSearch, Action: "find-patient"},
			{Label: "New Note", Icon: IconClipboard, Action: "new-note"},
			{Label: "Export Practice Data", Icon: IconDownload, Action: "export-data"},
		},
	},
	RoleFamily: {
		Role:        RoleFamily,
		DisplayName: "Family",
		Title:       "Family Care",
		Theme: Theme{
			PrimaryColor:       "amber",
			Gradient:           "from-amber-500 to-orange-500",
			BackgroundGradient: "from-amber-50 via-white to-orange-50",
			HoverBackground:    "hover:bg-amber-50",
		},
		Navigation: []NavigationItem{
			{Label: "Dashboard", Path: "/family/dashboard", Icon: IconHome},
			{Label: "Family Members", Path: "/family/members", Icon: IconUsers},
			{Label: "Meal Planning", Path: "/family/meals", Icon: IconUtensils},
			{Label: "Care Alerts", Path: "/family/alerts", Icon: IconBell},
			{Label: "Education", Path: "/family/education", Icon: IconBook},
		},
		QuickActions: []QuickAction{
			{Label: "Plan Meals", Icon: IconUtensils, Action: "plan-meals"},
			{Label: "Check Alerts", Icon: IconBell, Action: "check-alerts"},
			{Label: "Export Family Data", Icon: IconDownload, Action: "export-data"},
		},
	},
	RoleGuest: {
		Role:        RoleGuest,
		DisplayName: "Guest",
		Title:       "Explore",
		Theme: Theme{
			PrimaryColor:       "violet",
			Gradient:           "from-violet-500 to-purple-500",
			BackgroundGradient: "from-violet-50 via-white to-purple-50",
			HoverBackground:    "hover:bg-violet-50",
		},
		Navigation: []NavigationItem{
			{Label: "Explore", Path: "/guest/explore", Icon: IconCompass},
			{Label: "Education", Path: "/guest/education", Icon: IconBook},
			{Label: "Health Check", Path: "/guest/check", Icon: IconStethoscope},
		},
		QuickActions: []QuickAction{
			{Label: "Try Health Check", Icon: IconStethoscope, Action: "health-check"},
			{Label: "Browse Articles", Icon: IconBook, Action: "browse-education"},
		},
	},
}

// Registered reports whether id names a role in the registry.
func Registered(id Role) bool {
	_, ok := registry[id]
	return ok
}

// Lookup returns the configuration for id, or the default role's
// configuration when id is not registered. It never fails.
func Lookup(id Role) Configuration {
	if cfg, ok := registry[id]; ok {
		return cfg
	}
	return registry[DefaultRole]
}

// ThemeFor is shorthand for Lookup(id).Theme.
func ThemeFor(id Role) Theme {
	return Lookup(id).Theme
}

// Roles returns role identifiers in their fixed registry order.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}
