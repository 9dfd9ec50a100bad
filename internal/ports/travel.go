package ports

import (
	"context"

	domainauth "github.com/target/travelgo/internal/domain/auth"
	"github.com/target/travelgo/internal/domain/travel"
)

// TravelAPI is the external travel booking REST API. Authenticated
// operations take the caller's bearer token explicitly; searches are anonymous.
//
// Errors are *errors.AppError values: unauthorized for HTTP 401, upstream for
// other non-2xx answers, unavailable for transport failures.
type TravelAPI interface {
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error)
	Register(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error)

	SearchFlights(ctx context.Context, req travel.FlightSearch) ([]travel.Flight, error)
	BookFlight(ctx context.Context, token string, req travel.FlightBooking) (travel.Booking, error)
	SearchHotels(ctx context.Context, req travel.HotelSearch) ([]travel.Hotel, error)
	BookHotel(ctx context.Context, token string, req travel.HotelBooking) (travel.Booking, error)
	SearchCabs(ctx context.Context, req travel.CabSearch) ([]travel.Cab, error)
	BookCab(ctx context.Context, token string, req travel.CabBooking) (travel.Booking, error)

	GetProfile(ctx context.Context, token string) (travel.Profile, error)
	UpdateProfile(ctx context.Context, token string, update travel.ProfileUpdate) (travel.Profile, error)
	ListBookings(ctx context.Context, token string) ([]travel.Booking, error)

	// Ping reports whether the API answers HTTP at all.
	Ping(ctx context.Context) error
}
