package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/mocks"
	"github.com/target/travelgo/internal/testutil"
)

func newAccountFixture(t *testing.T) (*mocks.MockTravelAPI, *AccountService) {
	t.Helper()
	api := mocks.NewMockTravelAPI(gomock.NewController(t))
	return api, NewAccountService(AccountServiceOptions{API: api})
}

func TestAccountService_Dashboard(t *testing.T) {
	t.Run("stats and recent bookings", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().GetProfile(gomock.Any(), "tok").Return(travel.Profile{Name: "Jane"}, nil)
		api.EXPECT().ListBookings(gomock.Any(), "tok").Return(testutil.Bookings(7), nil)

		view, err := svc.Dashboard(context.Background(), "tok", "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, "Jane", view.DisplayName)
		assert.Equal(t, travel.BookingStats{Total: 7, Flights: 3, Hotels: 2, Cabs: 2}, view.Stats)
		assert.Len(t, view.Recent, travel.RecentLimit)
		assert.True(t, view.HasMore)
	})

	t.Run("profile failure falls back to email", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().GetProfile(gomock.Any(), "tok").Return(travel.Profile{}, apperrors.Upstream(404, "User not found"))
		api.EXPECT().ListBookings(gomock.Any(), "tok").Return(testutil.Bookings(2), nil)

		view, err := svc.Dashboard(context.Background(), "tok", "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", view.DisplayName)
		assert.False(t, view.HasMore)
		assert.Len(t, view.Recent, 2)
	})

	t.Run("bookings failure", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().GetProfile(gomock.Any(), "tok").Return(travel.Profile{}, nil).AnyTimes()
		api.EXPECT().ListBookings(gomock.Any(), "tok").Return(nil, apperrors.Upstream(500, "db down"))

		_, err := svc.Dashboard(context.Background(), "tok", "")
		require.Error(t, err)
		assert.Equal(t, MsgDashboardFailed, apperrors.MessageOr(err, ""))
		assert.False(t, apperrors.IsUnauthorized(err))
	})

	t.Run("rejected token", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().GetProfile(gomock.Any(), "tok").Return(travel.Profile{}, apperrors.Unauthorized(travel.MsgSessionExpired))
		api.EXPECT().ListBookings(gomock.Any(), "tok").DoAndReturn(
			func(ctx context.Context, _ string) ([]travel.Booking, error) {
				<-ctx.Done()
				return nil, apperrors.Wrap(ctx.Err(), apperrors.ErrCodeCanceled, "canceled")
			})

		_, err := svc.Dashboard(context.Background(), "tok", "")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("no token", func(t *testing.T) {
		_, svc := newAccountFixture(t)
		_, err := svc.Dashboard(context.Background(), "", "")
		require.ErrorIs(t, err, ErrSessionExpired)
	})
}

func TestAccountService_Profile(t *testing.T) {
	t.Run("profile and history", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().GetProfile(gomock.Any(), "tok").Return(travel.Profile{Email: "jane@example.com"}, nil)
		api.EXPECT().ListBookings(gomock.Any(), "tok").Return(testutil.Bookings(3), nil)

		view, err := svc.Profile(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", view.Profile.Email)
		assert.Len(t, view.Bookings, 3)
		assert.False(t, view.HistoryUnavailable)
	})

	t.Run("history failure is not fatal", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().GetProfile(gomock.Any(), "tok").Return(travel.Profile{Email: "jane@example.com"}, nil)
		api.EXPECT().ListBookings(gomock.Any(), "tok").Return(nil, apperrors.Upstream(500, ""))

		view, err := svc.Profile(context.Background(), "tok")
		require.NoError(t, err)
		assert.Empty(t, view.Bookings)
		assert.NotNil(t, view.Bookings)
		assert.True(t, view.HistoryUnavailable)
	})

	tests := []struct {
		name     string
		upstream error
		wantMsg  string
		unauth   bool
	}{
		{name: "server error", upstream: apperrors.Upstream(404, "User not found"), wantMsg: MsgProfileLoadFailed},
		{name: "network", upstream: apperrors.Unavailable(errors.New("refused"), ""), wantMsg: travel.MsgNetworkError},
		{name: "expired", upstream: apperrors.Unauthorized(travel.MsgSessionExpired), wantMsg: travel.MsgSessionExpired, unauth: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, svc := newAccountFixture(t)
			api.EXPECT().GetProfile(gomock.Any(), "tok").Return(travel.Profile{}, tt.upstream)
			api.EXPECT().ListBookings(gomock.Any(), "tok").Return(nil, nil).AnyTimes()

			_, err := svc.Profile(context.Background(), "tok")
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, apperrors.MessageOr(err, ""))
			assert.Equal(t, tt.unauth, apperrors.IsUnauthorized(err))
		})
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	t.Run("trims and saves", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().
			UpdateProfile(gomock.Any(), "tok", travel.ProfileUpdate{Name: "Jane", Address: "1 Main St", Phone: "+1 555"}).
			Return(travel.Profile{Name: "Jane"}, nil)

		p, err := svc.UpdateProfile(context.Background(), "tok", travel.ProfileUpdate{
			Name: " Jane ", Address: "1 Main St", Phone: "+1 555 ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Jane", p.Name)
	})

	t.Run("invalid phone never reaches upstream", func(t *testing.T) {
		_, svc := newAccountFixture(t)
		_, err := svc.UpdateProfile(context.Background(), "tok", travel.ProfileUpdate{Phone: "call me"})
		require.Error(t, err)
		assert.Equal(t, "phone", apperrors.GetField(err))
	})

	t.Run("server failure", func(t *testing.T) {
		api, svc := newAccountFixture(t)
		api.EXPECT().UpdateProfile(gomock.Any(), "tok", gomock.Any()).Return(travel.Profile{}, apperrors.Upstream(500, "oops"))

		_, err := svc.UpdateProfile(context.Background(), "tok", travel.ProfileUpdate{Name: "Jane"})
		require.Error(t, err)
		assert.Equal(t, MsgProfileUpdateFailed, apperrors.MessageOr(err, ""))
	})
}
