package travel

import (
	"fmt"
	"strings"
)

// Date layouts accepted from the search forms.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04"
)

const (
	minAdults = 1
	minGuests = 1
	minRooms  = 1
)

// FlightSearch queries available flights. The validate tags hold the form
// rules; the return date ordering is a struct-level rule.
type FlightSearch struct {
	From          string `json:"from"                 form:"from"          validate:"required"`
	To            string `json:"to"                   form:"to"            validate:"required"`
	DepartureDate string `json:"departureDate"        form:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"returnDate,omitempty" form:"returnDate"    validate:"omitempty,datetime=2006-01-02"`
	Adults        int    `json:"adults"               form:"adults"        validate:"min=1,max=9"`
	Children      int    `json:"children,omitempty"   form:"children"      validate:"min=0,max=9"`
	ClassType     string `json:"classType,omitempty"  form:"classType"`
}

// Normalize trims inputs, upper-cases airport codes and applies passenger defaults.
func (s FlightSearch) Normalize() FlightSearch {
	s.From = strings.ToUpper(strings.TrimSpace(s.From))
	s.To = strings.ToUpper(strings.TrimSpace(s.To))
	s.DepartureDate = strings.TrimSpace(s.DepartureDate)
	s.ReturnDate = strings.TrimSpace(s.ReturnDate)
	s.ClassType = strings.ToUpper(strings.TrimSpace(s.ClassType))
	if s.Adults == 0 {
		s.Adults = minAdults
	}
	return s
}

// CacheKey identifies the search for result caching.
func (s FlightSearch) CacheKey() string {
	return fmt.Sprintf("flight|%s|%s|%s|%s|%d|%d|%s",
		s.From, s.To, s.DepartureDate, s.ReturnDate, s.Adults, s.Children, s.ClassType)
}

// HotelSearch queries available hotels in a city.
type HotelSearch struct {
	City     string `json:"city"     form:"city"     validate:"required"`
	CheckIn  string `json:"checkIn"  form:"checkIn"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" form:"checkOut" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests"   form:"guests"   validate:"min=1,max=20"`
	Rooms    int    `json:"rooms"    form:"rooms"    validate:"min=1,max=10"`
}

// Normalize trims inputs, upper-cases the city code and applies occupancy defaults.
func (s HotelSearch) Normalize() HotelSearch {
	s.City = strings.ToUpper(strings.TrimSpace(s.City))
	s.CheckIn = strings.TrimSpace(s.CheckIn)
	s.CheckOut = strings.TrimSpace(s.CheckOut)
	if s.Guests == 0 {
		s.Guests = minGuests
	}
	if s.Rooms == 0 {
		s.Rooms = minRooms
	}
	return s
}

// CacheKey identifies the search for result caching.
func (s HotelSearch) CacheKey() string {
	return fmt.Sprintf("hotel|%s|%s|%s|%d|%d", s.City, s.CheckIn, s.CheckOut, s.Guests, s.Rooms)
}

// CabSearch queries cab offers between two places.
type CabSearch struct {
	Pickup     string `json:"pickup"     form:"pickup"     validate:"required"`
	Dropoff    string `json:"dropoff"    form:"dropoff"    validate:"required"`
	PickupTime string `json:"pickupTime" form:"pickupTime" validate:"required,datetime=2006-01-02T15:04"`
}

// Normalize trims inputs.
func (s CabSearch) Normalize() CabSearch {
	s.Pickup = strings.TrimSpace(s.Pickup)
	s.Dropoff = strings.TrimSpace(s.Dropoff)
	s.PickupTime = strings.TrimSpace(s.PickupTime)
	return s
}

// CacheKey identifies the search for result caching.
func (s CabSearch) CacheKey() string {
	return fmt.Sprintf("cab|%s|%s|%s", strings.ToLower(s.Pickup), strings.ToLower(s.Dropoff), s.PickupTime)
}
