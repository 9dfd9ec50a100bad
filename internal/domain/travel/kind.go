package travel

import (
	"strings"
)

// Kind identifies one of the three bookable services.
type Kind string

const (
	KindFlight Kind = "flight"
	KindHotel  Kind = "hotel"
	KindCab    Kind = "cab"
)

// Kinds lists the services in navigation order.
var Kinds = []Kind{KindFlight, KindHotel, KindCab}

// ParseKind matches a service name case-insensitively ("Flight", "flights", "cab").
func ParseKind(value string) (Kind, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSuffix(v, "s")
	k := Kind(v)
	if k.Valid() {
		return k, true
	}
	return "", false
}

// Valid reports whether k is a known service.
func (k Kind) Valid() bool {
	switch k {
	case KindFlight, KindHotel, KindCab:
		return true
	default:
		return false
	}
}

// Label is the capitalised singular name: "Flight".
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Plural is the lower-case plural used in paths and messages: "flights".
func (k Kind) Plural() string { return string(k) + "s" }

// PluralLabel is the capitalised plural used in headings: "Flights".
func (k Kind) PluralLabel() string { return k.Label() + "s" }

// SearchFailedMessage is shown when a search fails without a server-provided reason.
func (k Kind) SearchFailedMessage() string { return "Failed to search " + k.Plural() }

// BookFailedMessage is shown when a booking fails without a server-provided reason.
func (k Kind) BookFailedMessage() string { return "Failed to book " + string(k) }

// LoginRequiredMessage is shown when an anonymous visitor tries to book.
func (k Kind) LoginRequiredMessage() string {
	return "Please login to book " + k.Plural() + ". Click the Login button in the navigation menu."
}

// BookedMessage confirms a successful booking.
func (k Kind) BookedMessage() string {
	return k.Label() + " booked successfully! Check your dashboard for booking details."
}

// Messages shared by every service.
const (
	MsgMissingFields  = "Please fill in all required fields"
	MsgNetworkError   = "Network error. Please try again."
	MsgSessionExpired = "Your session has expired. Please login again."
)
