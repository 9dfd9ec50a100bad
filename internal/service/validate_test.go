package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
)

func TestValidateSearch(t *testing.T) {
	flight := travel.FlightSearch{From: "JFK", To: "LAX", DepartureDate: "2025-03-01", Adults: 2}
	hotel := travel.HotelSearch{City: "NYC", CheckIn: "2025-03-01", CheckOut: "2025-03-04", Guests: 1, Rooms: 1}
	cab := travel.CabSearch{Pickup: "Airport", Dropoff: "Downtown", PickupTime: "2025-03-01T09:30"}

	tests := []struct {
		name  string
		in    any
		field string
		msg   string
	}{
		{name: "valid flight", in: flight},
		{name: "valid round trip", in: with(flight, func(s *travel.FlightSearch) { s.ReturnDate = "2025-03-05" })},
		{name: "same day return", in: with(flight, func(s *travel.FlightSearch) { s.ReturnDate = s.DepartureDate })},
		{
			name:  "too many adults",
			in:    with(flight, func(s *travel.FlightSearch) { s.Adults = 10 }),
			field: "adults", msg: "Adults must be between 1 and 9",
		},
		{
			name:  "negative children",
			in:    with(flight, func(s *travel.FlightSearch) { s.Children = -1 }),
			field: "children", msg: "Children must be between 0 and 9",
		},
		{
			name:  "malformed departure",
			in:    with(flight, func(s *travel.FlightSearch) { s.DepartureDate = "03/01/2025" }),
			field: "departureDate", msg: "Departure date must be a valid date",
		},
		{
			name:  "return before departure",
			in:    with(flight, func(s *travel.FlightSearch) { s.ReturnDate = "2025-02-27" }),
			field: "returnDate", msg: "Return date cannot be before the departure date",
		},
		{name: "valid hotel", in: hotel},
		{
			name:  "same day check-out",
			in:    with(hotel, func(s *travel.HotelSearch) { s.CheckOut = s.CheckIn }),
			field: "checkOut", msg: "Check-out date must be after the check-in date",
		},
		{
			name:  "too many rooms",
			in:    with(hotel, func(s *travel.HotelSearch) { s.Rooms = 11 }),
			field: "rooms", msg: "Rooms must be between 1 and 10",
		},
		{
			name:  "too many guests",
			in:    with(hotel, func(s *travel.HotelSearch) { s.Guests = 21 }),
			field: "guests", msg: "Guests must be between 1 and 20",
		},
		{
			name:  "malformed check-in",
			in:    with(hotel, func(s *travel.HotelSearch) { s.CheckIn = "soon" }),
			field: "checkIn", msg: "Check-in date must be a valid date",
		},
		{name: "valid cab", in: cab},
		{
			name:  "pick-up without time",
			in:    with(cab, func(s *travel.CabSearch) { s.PickupTime = "2025-03-01" }),
			field: "pickupTime", msg: "Pick-up time must be a valid date and time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSearch(tt.in)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.field, apperrors.GetField(err))
			assert.Equal(t, tt.msg, apperrors.MessageOr(err, ""))
		})
	}
}

func TestValidateSearch_BlankRequiredFieldIsFormLevel(t *testing.T) {
	err := validateSearch(travel.HotelSearch{City: "NYC", CheckIn: "bad", Guests: 1, Rooms: 1})
	require.ErrorIs(t, err, ErrMissingFields)
	assert.Empty(t, apperrors.GetField(err))
}

func TestValidateStruct_ProfileUpdate(t *testing.T) {
	ok := travel.ProfileUpdate{Name: "Ada Lovelace", Address: "12 St James's Sq", Phone: "+44 (20) 7946-0000"}

	tests := []struct {
		name  string
		in    travel.ProfileUpdate
		field string
		msg   string
	}{
		{name: "valid", in: ok},
		{name: "all blank", in: travel.ProfileUpdate{}},
		{
			name:  "phone letters",
			in:    with(ok, func(u *travel.ProfileUpdate) { u.Phone = "call me" }),
			field: "phone", msg: "Phone may only contain digits, spaces and + - ( )",
		},
		{
			name:  "phone too long",
			in:    with(ok, func(u *travel.ProfileUpdate) { u.Phone = strings.Repeat("1", 33) }),
			field: "phone", msg: "Phone cannot exceed 32 characters",
		},
		{
			name:  "name too long",
			in:    with(ok, func(u *travel.ProfileUpdate) { u.Name = strings.Repeat("a", 101) }),
			field: "name", msg: "Name cannot exceed 100 characters",
		},
		{
			name: "name counts runes",
			in:   with(ok, func(u *travel.ProfileUpdate) { u.Name = strings.Repeat("é", 100) }),
		},
		{
			name:  "address too long",
			in:    with(ok, func(u *travel.ProfileUpdate) { u.Address = strings.Repeat("a", 256) }),
			field: "address", msg: "Address cannot exceed 255 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(tt.in)
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.field, apperrors.GetField(err))
			assert.Equal(t, tt.msg, apperrors.MessageOr(err, ""))
		})
	}
}

func with[T any](v T, edit func(*T)) T {
	edit(&v)
	return v
}
