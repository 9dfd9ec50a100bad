package testutil

import (
	"fmt"
	"time"

	domainauth "github.com/target/travelgo/internal/domain/auth"
	"github.com/target/travelgo/internal/domain/travel"
)

// SessionBuilder provides a fluent interface for building sessions in tests.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession creates a SessionBuilder with a valid, hour-long session.
func NewSession() *SessionBuilder {
	return &SessionBuilder{
		sess: domainauth.Session{
			ID:        "sess-1",
			Token:     "token-1",
			Email:     "traveller@example.com",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

// WithID sets the session ID.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.sess.ID = id
	return b
}

// WithToken sets the upstream token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.sess.Token = token
	return b
}

// WithEmail sets the email.
func (b *SessionBuilder) WithEmail(email string) *SessionBuilder {
	b.sess.Email = email
	return b
}

// ExpiresIn sets the expiry relative to now. Negative values produce an expired session.
func (b *SessionBuilder) ExpiresIn(d time.Duration) *SessionBuilder {
	b.sess.ExpiresAt = time.Now().Add(d)
	return b
}

// Build returns the session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}

// Bookings returns n bookings cycling through flight, hotel and cab, with IDs 1..n.
func Bookings(n int) []travel.Booking {
	out := make([]travel.Booking, 0, n)
	for i := range n {
		id := i + 1
		var b travel.Booking
		switch i % 3 {
		case 0:
			b = travel.Booking{Type: "Flight", Details: fmt.Sprintf("Flight AA%d from JFK to LAX on 2025-03-01", 100+id)}
		case 1:
			b = travel.Booking{Type: "Hotel", Details: "Hotel Grand Plaza Hotel in NYC from 2025-03-01 to 2025-03-04"}
		default:
			b = travel.Booking{Type: "Cab", Details: "Cab from Airport to Downtown at 2025-03-01T09:30"}
		}
		b.ID = travel.Text(fmt.Sprint(id))
		out = append(out, b)
	}
	return out
}

// Flights returns the three stubbed flight offers the travel API serves without live credentials.
func Flights() []travel.Flight {
	return []travel.Flight{
		{FlightNumber: "AA101", Airline: "American Airlines", From: "JFK", To: "LAX",
			DepartureTime: "2025-03-01T08:00:00", ArrivalTime: "2025-03-01T11:30:00",
			Price: travel.NewAmount(299.99), Currency: "USD"},
		{FlightNumber: "DL202", Airline: "Delta Airlines", From: "JFK", To: "LAX",
			DepartureTime: "2025-03-01T14:00:00", ArrivalTime: "2025-03-01T17:30:00",
			Price: travel.NewAmount(349.50), Currency: "USD"},
		{FlightNumber: "UA303", Airline: "United Airlines", From: "JFK", To: "LAX",
			DepartureTime: "2025-03-01T19:00:00", ArrivalTime: "2025-03-01T22:30:00",
			Price: travel.NewAmount(279.99), Currency: "USD"},
	}
}

// Hotels returns stubbed hotel offers.
func Hotels() []travel.Hotel {
	return []travel.Hotel{
		{HotelID: "HOTEL001", Name: "Grand Plaza Hotel", City: "NYC", CheckIn: "2025-03-01", CheckOut: "2025-03-04",
			PricePerNight: travel.NewAmount(199.99), Currency: "USD", Rating: travel.NewAmount(4.5),
			Amenities: []string{"WiFi", "Pool", "Gym", "Restaurant"}},
		{HotelID: "HOTEL003", Name: "Budget Inn", City: "NYC", CheckIn: "2025-03-01", CheckOut: "2025-03-04",
			PricePerNight: travel.NewAmount(89.99), Currency: "USD", Rating: travel.NewAmount(3.8),
			Amenities: []string{"WiFi", "Parking"}},
	}
}

// Cabs returns stubbed cab offers.
func Cabs() []travel.Cab {
	return []travel.Cab{
		{ProviderID: "UBER001", Provider: "Uber", VehicleType: "Standard", Pickup: "Airport", Dropoff: "Downtown",
			PickupTime: "2025-03-01T09:30", EstimatedDuration: "25 minutes", Price: travel.NewAmount(18.50), Currency: "USD"},
		{ProviderID: "TAXI001", Provider: "Local Taxi", VehicleType: "Taxi", Pickup: "Airport", Dropoff: "Downtown",
			PickupTime: "2025-03-01T09:30", EstimatedDuration: "30 minutes", Price: travel.NewAmount(22.00), Currency: "USD"},
	}
}
