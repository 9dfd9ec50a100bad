package httpx

import "github.com/target/travelgo/internal/domain/travel"

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome        = "home"
	PageFlights     = "flights"
	PageHotels      = "hotels"
	PageCabs        = "cabs"
	PageLogin       = "login"
	PageSignup      = "signup"
	PageDashboard   = "dashboard"
	PageProfile     = "profile"
	PageProfileEdit = "profile-edit"
	PageExpired     = "expired"
)

// Well-known paths.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathLogout    = "/logout"
	PathDashboard = "/dashboard"
	PathProfile   = "/profile"
	PathExpired   = "/auth/expired"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
	StaticPathFromRoot   = "frontend/static"
	StaticPathFromTest   = "../../frontend/static"
)

// Names of fragment templates rendered on their own for HTMX swaps.
const (
	tmplFlightResults = "flight-results"
	tmplHotelResults  = "hotel-results"
	tmplCabResults    = "cab-results"
	tmplFormAlert     = "form-alert"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:        "home-content",
	PageFlights:     "flights-content",
	PageHotels:      "hotels-content",
	PageCabs:        "cabs-content",
	PageLogin:       "login-content",
	PageSignup:      "signup-content",
	PageDashboard:   "dashboard-content",
	PageProfile:     "profile-content",
	PageProfileEdit: "profile-edit-content",
	PageExpired:     "expired-content",
}

// ContentTemplateFor returns the content template name for a page, or "" if unknown.
func ContentTemplateFor(page string) string {
	return contentTemplates[page]
}

// servicePage maps a booking kind onto its search page identifier.
func servicePage(kind travel.Kind) string {
	return kind.Plural()
}
