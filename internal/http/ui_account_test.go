package httpx

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/ports"
	"github.com/target/travelgo/internal/service"
	"github.com/target/travelgo/internal/testutil"
)

func TestDashboard(t *testing.T) {
	t.Run("stats and recent bookings", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{Email: testEmail, Name: "Ada Lovelace"}, nil)
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).
			Return(testutil.Bookings(7), nil)

		rec := app.do(t, testRequest{Path: PathDashboard, Session: true})
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Welcome, Ada Lovelace!")
		assert.Contains(t, body, "Total Bookings")
		assert.Contains(t, body, `<span class="stat-value">7</span>`)
		assert.Contains(t, body, `<span class="stat-value">3</span>`)
		assert.Contains(t, body, `booking-id">#5<`)
		assert.NotContains(t, body, `booking-id">#6<`)
		assert.Contains(t, body, "View All Bookings")
		assert.True(t, ContainsAll(body, []string{"Book Flights", "Book Hotels", "Book Cabs"}))
	})

	t.Run("empty state and email greeting", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{}, apperrors.Upstream(http.StatusInternalServerError, "boom"))
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).
			Return([]travel.Booking{}, nil)

		rec := app.do(t, testRequest{Path: PathDashboard, Session: true})
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Welcome, "+testEmail+"!")
		assert.Contains(t, body, "No bookings yet")
		assert.NotContains(t, body, "View All Bookings")
	})

	t.Run("bookings failure shows the error", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{}, nil).AnyTimes()
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).
			Return(nil, apperrors.Unavailable(context.DeadlineExceeded, "travel api unreachable"))

		rec := app.do(t, testRequest{Path: PathDashboard, Session: true, HTMX: true})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), service.MsgDashboardFailed)
	})

	t.Run("rejected token expires the session", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{}, apperrors.Unauthorized("token expired")).AnyTimes()
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).
			Return(nil, apperrors.Unauthorized("token expired")).AnyTimes()

		rec := app.do(t, testRequest{Path: PathDashboard, Session: true})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, PathExpired, rec.Header().Get("Location"))

		_, err := app.sessions.Get(context.Background(), testSessionID)
		assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	})
}

func TestProfile(t *testing.T) {
	t.Run("details with fallbacks", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{Email: testEmail, Name: "Ada"}, nil)
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).
			Return(testutil.Bookings(2), nil)

		rec := app.do(t, testRequest{Path: PathProfile, Session: true})
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "<dd>Ada</dd>")
		assert.Contains(t, body, "<dd>Not set</dd>")
		assert.Contains(t, body, "Edit Profile")
		assert.Contains(t, body, "Booking History")
		assert.Contains(t, body, `booking-id">#2<`)
	})

	t.Run("history failure is not fatal", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{Email: testEmail}, nil)
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).
			Return(nil, apperrors.Upstream(http.StatusInternalServerError, "boom"))

		rec := app.do(t, testRequest{Path: PathProfile, Session: true})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Booking history is unavailable right now.")
	})

	t.Run("profile failure", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{}, apperrors.Upstream(http.StatusInternalServerError, "boom"))
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).
			Return([]travel.Booking{}, nil).AnyTimes()

		rec := app.do(t, testRequest{Path: PathProfile, Session: true})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, service.MsgProfileLoadFailed)
		assert.NotContains(t, body, "Edit Profile")
	})

	t.Run("edit form is prefilled", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).
			Return(travel.Profile{Email: testEmail, Name: "Ada", Phone: "+1 555 0100"}, nil)
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).Return([]travel.Booking{}, nil)

		rec := app.do(t, testRequest{Path: PathProfile + "/edit", Session: true})
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `name="name" value="Ada"`)
		assert.Contains(t, body, `name="phone" value="&#43;1 555 0100"`)
		assert.Contains(t, body, "Save Changes")
	})

	t.Run("anonymous visitors go to login", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.do(t, testRequest{Path: PathProfile})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, PathLogin+"?redirect_uri=%2Fprofile", rec.Header().Get("Location"))
	})
}

func TestProfileUpdate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		update := travel.ProfileUpdate{Name: "Ada Lovelace", Address: "12 St James's Square", Phone: "555-0100"}
		saved := travel.Profile{ID: "u1", Email: testEmail, Name: update.Name, Address: update.Address, Phone: update.Phone}
		app.api.EXPECT().UpdateProfile(gomock.Any(), testToken, update).Return(saved, nil)
		app.api.EXPECT().GetProfile(gomock.Any(), testToken).Return(saved, nil)
		app.api.EXPECT().ListBookings(gomock.Any(), testToken).Return([]travel.Booking{}, nil)

		rec := app.do(t, testRequest{
			Method: http.MethodPost, Path: PathProfile, HTMX: true, Session: true,
			Form: url.Values{"name": {" Ada Lovelace "}, "address": {update.Address}, "phone": {update.Phone}},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Hx-Trigger"), service.MsgProfileUpdated)
		assert.Equal(t, PathProfile, rec.Header().Get("Hx-Push-Url"))
		body := rec.Body.String()
		assert.Contains(t, body, service.MsgProfileUpdated)
		assert.Contains(t, body, "<dd>Ada Lovelace</dd>")
	})

	t.Run("invalid phone", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)

		rec := app.do(t, testRequest{
			Method: http.MethodPost, Path: PathProfile, Session: true,
			Form: url.Values{"name": {"Ada"}, "phone": {"call me"}},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Phone may only contain digits")
		assert.Contains(t, body, `name="name" value="Ada"`)
		assert.Contains(t, body, `value="`+testEmail+`" readonly`)
	})

	t.Run("rejected token over htmx", func(t *testing.T) {
		app := newTestApp(t)
		app.signIn(t)
		app.api.EXPECT().UpdateProfile(gomock.Any(), testToken, gomock.Any()).
			Return(travel.Profile{}, apperrors.Unauthorized("token expired"))

		rec := app.do(t, testRequest{
			Method: http.MethodPost, Path: PathProfile, HTMX: true, Session: true,
			Form: url.Values{"name": {"Ada"}},
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, PathExpired, rec.Header().Get("Hx-Redirect"))
	})
}
