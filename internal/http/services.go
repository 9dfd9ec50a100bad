package httpx

import (
	"context"

	domainauth "github.com/target/travelgo/internal/domain/auth"
	"github.com/target/travelgo/internal/domain/travel"
	"github.com/target/travelgo/internal/service"
)

// AuthService is the session surface the handlers and auth middleware need.
type AuthService interface {
	Login(ctx context.Context, in service.LoginInput) (domainauth.Session, error)
	Register(ctx context.Context, in service.RegisterInput) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	Expire(ctx context.Context, sessionID string) error
}

// TravelService searches and books the three services.
type TravelService interface {
	SearchFlights(ctx context.Context, req travel.FlightSearch) ([]travel.Flight, error)
	SearchHotels(ctx context.Context, req travel.HotelSearch) ([]travel.Hotel, error)
	SearchCabs(ctx context.Context, req travel.CabSearch) ([]travel.Cab, error)
	BookFlight(ctx context.Context, token string, req travel.FlightBooking) (travel.Booking, error)
	BookHotel(ctx context.Context, token string, req travel.HotelBooking) (travel.Booking, error)
	BookCab(ctx context.Context, token string, req travel.CabBooking) (travel.Booking, error)
}

// AccountService loads the dashboard and profile pages.
type AccountService interface {
	Dashboard(ctx context.Context, token, email string) (service.DashboardView, error)
	Profile(ctx context.Context, token string) (service.ProfileView, error)
	UpdateProfile(ctx context.Context, token string, update travel.ProfileUpdate) (travel.Profile, error)
}

// Pinger reports upstream reachability for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ AuthService    = (*service.AuthService)(nil)
	_ TravelService  = (*service.TravelService)(nil)
	_ AccountService = (*service.AccountService)(nil)
)
