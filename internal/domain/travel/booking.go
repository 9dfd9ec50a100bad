package travel

import (
	"strings"
	"time"
)

// RecentLimit is how many bookings the dashboard lists before offering "View All Bookings".
const RecentLimit = 5

// Booking is a reservation recorded by the travel API.
type Booking struct {
	ID        Text       `json:"id"`
	Type      string     `json:"type"`
	Details   string     `json:"details"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Kind maps the free-form booking type ("Flight", "hotel") onto a service.
// Unknown types report false.
func (b Booking) Kind() (Kind, bool) { return ParseKind(b.Type) }

// BookedOn returns the creation time, falling back to now when the API omits it.
func (b Booking) BookedOn(now time.Time) time.Time {
	if b.CreatedAt == nil || b.CreatedAt.IsZero() {
		return now
	}
	return *b.CreatedAt
}

// BookingStats counts bookings per service.
type BookingStats struct {
	Total   int
	Flights int
	Hotels  int
	Cabs    int
}

// Stats tallies bookings by kind. Bookings with an unknown type only count toward Total.
func Stats(bookings []Booking) BookingStats {
	stats := BookingStats{Total: len(bookings)}
	for _, b := range bookings {
		kind, ok := b.Kind()
		if !ok {
			continue
		}
		switch kind {
		case KindFlight:
			stats.Flights++
		case KindHotel:
			stats.Hotels++
		case KindCab:
			stats.Cabs++
		}
	}
	return stats
}

// Recent returns the first n bookings in the order the API returned them.
func Recent(bookings []Booking, n int) []Booking {
	if n < 0 || len(bookings) <= n {
		return bookings
	}
	return bookings[:n]
}

// Profile is the signed-in user's account record.
type Profile struct {
	ID      Text   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// DisplayName picks the greeting name: profile name, then email, then fallbackEmail, then "Guest".
func (p Profile) DisplayName(fallbackEmail string) string {
	for _, v := range []string{p.Name, p.Email, fallbackEmail} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return "Guest"
}

// ProfileUpdate carries the editable profile fields. Phone uses the phone
// rule registered by the form validator.
type ProfileUpdate struct {
	Name    string `json:"name"    form:"name"    validate:"max=100"`
	Address string `json:"address" form:"address" validate:"max=255"`
	Phone   string `json:"phone"   form:"phone"   validate:"omitempty,max=32,phone"`
}

// Normalize trims surrounding whitespace.
func (u ProfileUpdate) Normalize() ProfileUpdate {
	u.Name = strings.TrimSpace(u.Name)
	u.Address = strings.TrimSpace(u.Address)
	u.Phone = strings.TrimSpace(u.Phone)
	return u
}

// UpdateFrom returns an edit form prefilled from p.
func UpdateFrom(p Profile) ProfileUpdate {
	return ProfileUpdate{Name: p.Name, Address: p.Address, Phone: p.Phone}
}
