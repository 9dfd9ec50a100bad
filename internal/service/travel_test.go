package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/travelgo/internal/adapters/memory"
	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/mocks"
	"github.com/target/travelgo/internal/testutil"
)

func validFlightSearch() travel.FlightSearch {
	return travel.FlightSearch{From: "jfk", To: "lax", DepartureDate: "2025-03-01"}
}

func TestTravelService_SearchFlights_NormalizesAndForwards(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	svc := NewTravelService(TravelServiceOptions{API: api})

	api.EXPECT().
		SearchFlights(gomock.Any(), travel.FlightSearch{From: "JFK", To: "LAX", DepartureDate: "2025-03-01", Adults: 1}).
		Return(testutil.Flights(), nil)

	got, err := svc.SearchFlights(context.Background(), validFlightSearch())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestTravelService_Search_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	svc := NewTravelService(TravelServiceOptions{API: api})
	ctx := context.Background()

	_, err := svc.SearchFlights(ctx, travel.FlightSearch{From: "JFK", DepartureDate: "2025-03-01"})
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.SearchHotels(ctx, travel.HotelSearch{City: "NYC", CheckIn: "2025-03-01"})
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.SearchCabs(ctx, travel.CabSearch{Pickup: "Airport", Dropoff: " "})
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestTravelService_Search_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewTravelService(TravelServiceOptions{API: mocks.NewMockTravelAPI(ctrl)})

	req := validFlightSearch()
	req.Adults = 12
	_, err := svc.SearchFlights(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "adults", apperrors.GetField(err))
}

func TestTravelService_Search_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		upstream error
		wantMsg  string
		check    func(error) bool
	}{
		{
			name:     "server message",
			upstream: apperrors.Upstream(500, "Failed to search hotels: quota exceeded"),
			wantMsg:  "Failed to search hotels: quota exceeded",
			check:    apperrors.IsUpstream,
		},
		{
			name:     "default message",
			upstream: apperrors.Upstream(502, ""),
			wantMsg:  "Failed to search hotels",
			check:    apperrors.IsUpstream,
		},
		{
			name:     "network",
			upstream: apperrors.Unavailable(errors.New("connection refused"), "dial failed"),
			wantMsg:  travel.MsgNetworkError,
			check:    apperrors.IsUnavailable,
		},
		{
			name:     "plain error",
			upstream: errors.New("boom"),
			wantMsg:  "Failed to search hotels",
			check:    apperrors.IsInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := mocks.NewMockTravelAPI(ctrl)
			svc := NewTravelService(TravelServiceOptions{API: api})
			api.EXPECT().SearchHotels(gomock.Any(), gomock.Any()).Return(nil, tt.upstream)

			_, err := svc.SearchHotels(context.Background(), travel.HotelSearch{
				City: "nyc", CheckIn: "2025-03-01", CheckOut: "2025-03-04",
			})
			require.Error(t, err)
			assert.True(t, tt.check(err))
			assert.Equal(t, tt.wantMsg, apperrors.MessageOr(err, ""))
		})
	}
}

func TestTravelService_Search_UsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	metrics := &recordingSink{}
	svc := NewTravelService(TravelServiceOptions{
		API:      api,
		Cache:    memory.NewCache(),
		CacheTTL: time.Minute,
		Metrics:  metrics,
	})
	ctx := context.Background()
	req := travel.CabSearch{Pickup: "Airport", Dropoff: "Downtown", PickupTime: "2025-03-01T09:30"}

	api.EXPECT().SearchCabs(gomock.Any(), gomock.Any()).Return(testutil.Cabs(), nil).Times(1)

	first, err := svc.SearchCabs(ctx, req)
	require.NoError(t, err)
	second, err := svc.SearchCabs(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Uber", second[0].Provider)
	assert.Equal(t, 18.5, second[0].Price.Value)
	assert.Equal(t, int64(1), metrics.get(MetricSearchCacheHit))
	assert.Equal(t, int64(1), metrics.get(MetricSearchCacheMiss))
}

func TestTravelService_Search_CacheFailuresAreIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	cache := mocks.NewMockSearchCache(ctrl)
	svc := NewTravelService(TravelServiceOptions{API: api, Cache: cache, CacheTTL: time.Minute})

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("{not json"), nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Minute).Return(errors.New("redis down"))
	api.EXPECT().SearchHotels(gomock.Any(), gomock.Any()).Return(testutil.Hotels(), nil)

	got, err := svc.SearchHotels(context.Background(), travel.HotelSearch{
		City: "NYC", CheckIn: "2025-03-01", CheckOut: "2025-03-04",
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTravelService_Search_CachesEncodedResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	cache := mocks.NewMockSearchCache(ctrl)
	svc := NewTravelService(TravelServiceOptions{API: api, Cache: cache, CacheTTL: 2 * time.Minute})

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	api.EXPECT().SearchFlights(gomock.Any(), gomock.Any()).Return(testutil.Flights(), nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), 2*time.Minute).DoAndReturn(
		func(_ context.Context, key string, raw []byte, _ time.Duration) error {
			assert.Contains(t, key, "flights:")
			var decoded []travel.Flight
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, "AA101", decoded[0].FlightNumber.String())
			return nil
		})

	_, err := svc.SearchFlights(context.Background(), validFlightSearch())
	require.NoError(t, err)
}

func TestTravelService_Search_CollapsesConcurrentCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	svc := NewTravelService(TravelServiceOptions{API: api})

	release := make(chan struct{})
	api.EXPECT().SearchFlights(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, travel.FlightSearch) ([]travel.Flight, error) {
			<-release
			return testutil.Flights(), nil
		}).MinTimes(1).MaxTimes(2)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.SearchFlights(context.Background(), validFlightSearch())
			assert.NoError(t, err)
			assert.Len(t, got, 3)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
}

func TestTravelService_Search_CancelledCallerDoesNotFailOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	svc := NewTravelService(TravelServiceOptions{API: api})

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().SearchFlights(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ travel.FlightSearch) ([]travel.Flight, error) {
			close(started)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-release:
				return testutil.Flights(), nil
			}
		}).Times(1)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.SearchFlights(firstCtx, validFlightSearch())
		firstErr <- err
	}()
	<-started

	type result struct {
		flights []travel.Flight
		err     error
	}
	second := make(chan result, 1)
	go func() {
		got, err := svc.SearchFlights(context.Background(), validFlightSearch())
		second <- result{got, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		require.Error(t, err)
		assert.True(t, apperrors.IsCanceled(err))
		assert.Equal(t, travel.MsgNetworkError, apperrors.MessageOr(err, ""))
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Len(t, res.flights, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never finished")
	}
}

func TestTravelService_Book(t *testing.T) {
	ctx := context.Background()

	t.Run("no session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := NewTravelService(TravelServiceOptions{API: mocks.NewMockTravelAPI(ctrl)})

		_, err := svc.BookFlight(ctx, "", travel.FlightBooking{FlightNumber: "AA101"})
		require.ErrorIs(t, err, ErrLoginRequired)
		assert.Equal(t, travel.KindFlight.LoginRequiredMessage(), apperrors.MessageOr(err, ""))
	})

	t.Run("hotel success fills type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocks.NewMockTravelAPI(ctrl)
		svc := NewTravelService(TravelServiceOptions{API: api})
		req := travel.HotelBooking{Hotel: "Grand Plaza Hotel", City: "NYC", CheckIn: "2025-03-01", CheckOut: "2025-03-04"}
		api.EXPECT().BookHotel(ctx, "tok", req).Return(travel.Booking{ID: "7"}, nil)

		b, err := svc.BookHotel(ctx, "tok", req)
		require.NoError(t, err)
		assert.Equal(t, "Hotel", b.Type)
		assert.Equal(t, travel.Text("7"), b.ID)
	})

	t.Run("expired token passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocks.NewMockTravelAPI(ctrl)
		svc := NewTravelService(TravelServiceOptions{API: api})
		api.EXPECT().BookCab(ctx, "tok", gomock.Any()).Return(travel.Booking{}, apperrors.Unauthorized(travel.MsgSessionExpired))

		_, err := svc.BookCab(ctx, "tok", travel.CabBooking{Pickup: "A", Dropoff: "B", PickupTime: "2025-03-01T09:30"})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("server failure uses default", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := mocks.NewMockTravelAPI(ctrl)
		svc := NewTravelService(TravelServiceOptions{API: api})
		api.EXPECT().BookCab(ctx, "tok", gomock.Any()).Return(travel.Booking{}, apperrors.Upstream(500, ""))

		_, err := svc.BookCab(ctx, "tok", travel.CabBooking{})
		require.Error(t, err)
		assert.Equal(t, "Failed to book cab", apperrors.MessageOr(err, ""))
	})
}
