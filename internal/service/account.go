package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/ports"
)

// Account page messages.
const (
	MsgDashboardFailed     = "Failed to load dashboard data"
	MsgProfileLoadFailed   = "Failed to load profile"
	MsgProfileUpdateFailed = "Failed to update profile"
	MsgProfileUpdated      = "Profile updated successfully!"
)

// DashboardView is everything the dashboard page renders.
type DashboardView struct {
	Profile     travel.Profile
	DisplayName string
	Stats       travel.BookingStats
	Recent      []travel.Booking
	HasMore     bool
}

// ProfileView is the profile page: account details plus booking history.
type ProfileView struct {
	Profile  travel.Profile
	Bookings []travel.Booking
	// HistoryUnavailable is set when the booking list could not be loaded.
	HistoryUnavailable bool
}

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	API    ports.TravelAPI // Required
	Logger *slog.Logger
}

// AccountService loads and edits the signed-in user's dashboard and profile.
type AccountService struct {
	api    ports.TravelAPI
	logger *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{api: opts.API, logger: logger.With("component", "account_service")}
}

// Dashboard loads the profile and bookings concurrently. A rejected token
// aborts both; a profile failure alone leaves the greeting on the fallback email.
func (s *AccountService) Dashboard(ctx context.Context, token, email string) (DashboardView, error) {
	if token == "" {
		return DashboardView{}, ErrSessionExpired
	}

	var (
		profile  travel.Profile
		bookings []travel.Booking
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.api.GetProfile(gctx, token)
		if err != nil {
			if apperrors.IsUnauthorized(err) {
				return err
			}
			if gctx.Err() == nil {
				s.logger.WarnContext(ctx, "dashboard profile unavailable", "error", err)
			}
			return nil
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		b, err := s.api.ListBookings(gctx, token)
		if err != nil {
			return err
		}
		bookings = b
		return nil
	})

	if err := g.Wait(); err != nil {
		if apperrors.IsUnauthorized(err) {
			return DashboardView{}, err
		}
		s.logger.WarnContext(ctx, "dashboard bookings unavailable", "error", err)
		code := apperrors.GetCode(err)
		if code == "" {
			code = apperrors.ErrCodeInternal
		}
		return DashboardView{}, apperrors.Wrap(err, code, MsgDashboardFailed)
	}

	return DashboardView{
		Profile:     profile,
		DisplayName: profile.DisplayName(email),
		Stats:       travel.Stats(bookings),
		Recent:      travel.Recent(bookings, travel.RecentLimit),
		HasMore:     len(bookings) > travel.RecentLimit,
	}, nil
}

// Profile loads the account details and the full booking history. Only the
// profile request is fatal; a failed history renders as empty.
func (s *AccountService) Profile(ctx context.Context, token string) (ProfileView, error) {
	if token == "" {
		return ProfileView{}, ErrSessionExpired
	}

	var view ProfileView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.api.GetProfile(gctx, token)
		if err != nil {
			return err
		}
		view.Profile = p
		return nil
	})
	g.Go(func() error {
		b, err := s.api.ListBookings(gctx, token)
		if err != nil {
			if apperrors.IsUnauthorized(err) {
				return err
			}
			view.HistoryUnavailable = true
			if gctx.Err() == nil {
				s.logger.WarnContext(ctx, "booking history unavailable", "error", err)
			}
			return nil
		}
		view.Bookings = b
		return nil
	})

	if err := g.Wait(); err != nil {
		return ProfileView{}, accountError(err, MsgProfileLoadFailed)
	}
	if view.Bookings == nil {
		view.Bookings = []travel.Booking{}
	}
	return view, nil
}

// UpdateProfile validates and saves the editable profile fields.
func (s *AccountService) UpdateProfile(ctx context.Context, token string, update travel.ProfileUpdate) (travel.Profile, error) {
	if token == "" {
		return travel.Profile{}, ErrSessionExpired
	}

	update = update.Normalize()
	if err := validateStruct(update); err != nil {
		return travel.Profile{}, err
	}

	p, err := s.api.UpdateProfile(ctx, token, update)
	if err != nil {
		return travel.Profile{}, accountError(err, MsgProfileUpdateFailed)
	}
	return p, nil
}

// accountError maps failures on account pages: a rejected token passes
// through, transport failures get the network message, anything else the fallback.
func accountError(err error, fallback string) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, fallback)
	}
	if apperrors.IsNetworkError(err) {
		return &apperrors.AppError{Code: appErr.Code, Message: travel.MsgNetworkError, Cause: err}
	}
	switch appErr.Code {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeValidation:
		return err
	default:
		return &apperrors.AppError{Code: appErr.Code, Message: fallback, Cause: err, Status: appErr.Status}
	}
}
