// Package viewmodel holds the template-facing shapes of page chrome, search
// results and bookings.
package viewmodel

// User represents the signed-in traveller exposed to templates.
type User struct {
	Email string
}

// Layout captures shared chrome metadata (titles, navigation state, auth flags).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	IsAuthenticated bool
	User            *User
	Year            int
}
