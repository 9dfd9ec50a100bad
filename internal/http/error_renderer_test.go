package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/service"
)

func TestProcessError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      string
		wantField string
	}{
		{
			name: "wrapped timeout keeps the service message",
			err: apperrors.Wrap(
				apperrors.Unavailable(context.DeadlineExceeded, "travel api unreachable"),
				apperrors.ErrCodeUnavailable, service.MsgDashboardFailed),
			want: service.MsgDashboardFailed,
		},
		{
			name: "bare deadline is a network error",
			err:  fmt.Errorf("list bookings: %w", context.DeadlineExceeded),
			want: travel.MsgNetworkError,
		},
		{
			name: "bare cancellation is a network error",
			err:  context.Canceled,
			want: travel.MsgNetworkError,
		},
		{
			name: "unavailable without message",
			err:  apperrors.Unavailable(errors.New("dial tcp"), ""),
			want: travel.MsgNetworkError,
		},
		{
			name:      "field validation",
			err:       apperrors.ValidationField("email", "Email is required"),
			want:      "Email is required",
			wantField: "email",
		},
		{
			name: "upstream message",
			err:  apperrors.Upstream(500, "Flight is full"),
			want: "Flight is full",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: errMsgGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fields map[string]string
			got := processError(tt.err, &fields)
			assert.Equal(t, tt.want, got)
			if tt.wantField != "" {
				assert.Equal(t, tt.want, fields[tt.wantField])
			} else {
				assert.Empty(t, fields)
			}
		})
	}
}

func TestRenderError_StampsLayoutWithClock(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantYear int
	}{
		{name: "handler clock", now: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), wantYear: 2019},
		{name: "zero falls back to wall clock", wantYear: time.Now().Year()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]any
			rec := httptest.NewRecorder()
			RenderError(ErrorOpts{
				W:   rec,
				R:   httptest.NewRequest(http.MethodPost, PathLogin, nil),
				Err: apperrors.Unauthorized("bad credentials"),
				Renderer: func(_ http.ResponseWriter, _ *http.Request, data map[string]any) {
					got = data
				},
				Now: tt.now,
			})
			require.NotNil(t, got)
			assert.Equal(t, tt.wantYear, got["Year"])
		})
	}
}
