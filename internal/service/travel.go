package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/observability/metrics"
	"github.com/target/travelgo/internal/ports"
)

// Search cache metrics.
const (
	MetricSearchCacheHit  = metrics.SearchCacheHit
	MetricSearchCacheMiss = metrics.SearchCacheMiss
)

// sharedSearchTimeout bounds a collapsed upstream search independently of
// the request that started it.
const sharedSearchTimeout = 30 * time.Second

var (
	// ErrMissingFields is returned when a search form has a blank required field.
	ErrMissingFields = apperrors.Validation(travel.MsgMissingFields)
	// ErrLoginRequired is the cause of booking attempts made without a session.
	ErrLoginRequired = errors.New("login required")
)

// TravelServiceOptions groups dependencies for TravelService.
type TravelServiceOptions struct {
	API ports.TravelAPI // Required
	// Cache is optional; a nil cache or a zero CacheTTL disables result caching.
	Cache    ports.SearchCache
	CacheTTL time.Duration
	Metrics  ports.MetricsSink
	Logger   *slog.Logger
}

// TravelService runs flight, hotel and cab searches and bookings.
type TravelService struct {
	api      ports.TravelAPI
	cache    ports.SearchCache
	cacheTTL time.Duration
	metrics  ports.MetricsSink
	logger   *slog.Logger
	group    singleflight.Group
}

// NewTravelService constructs a new TravelService.
func NewTravelService(opts TravelServiceOptions) *TravelService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TravelService{
		api:      opts.API,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "travel_service"),
	}
}

// SearchFlights validates and runs a flight search.
func (s *TravelService) SearchFlights(ctx context.Context, req travel.FlightSearch) ([]travel.Flight, error) {
	req = req.Normalize()
	if err := validateSearch(req); err != nil {
		return nil, err
	}
	return search(ctx, s, travel.KindFlight, req.CacheKey(), func(ctx context.Context) ([]travel.Flight, error) {
		return s.api.SearchFlights(ctx, req)
	})
}

// SearchHotels validates and runs a hotel search.
func (s *TravelService) SearchHotels(ctx context.Context, req travel.HotelSearch) ([]travel.Hotel, error) {
	req = req.Normalize()
	if err := validateSearch(req); err != nil {
		return nil, err
	}
	return search(ctx, s, travel.KindHotel, req.CacheKey(), func(ctx context.Context) ([]travel.Hotel, error) {
		return s.api.SearchHotels(ctx, req)
	})
}

// SearchCabs validates and runs a cab search.
func (s *TravelService) SearchCabs(ctx context.Context, req travel.CabSearch) ([]travel.Cab, error) {
	req = req.Normalize()
	if err := validateSearch(req); err != nil {
		return nil, err
	}
	return search(ctx, s, travel.KindCab, req.CacheKey(), func(ctx context.Context) ([]travel.Cab, error) {
		return s.api.SearchCabs(ctx, req)
	})
}

// BookFlight reserves a flight for the session owning token.
func (s *TravelService) BookFlight(ctx context.Context, token string, req travel.FlightBooking) (travel.Booking, error) {
	return book(ctx, token, travel.KindFlight, func(ctx context.Context) (travel.Booking, error) {
		return s.api.BookFlight(ctx, token, req)
	})
}

// BookHotel reserves a hotel for the session owning token.
func (s *TravelService) BookHotel(ctx context.Context, token string, req travel.HotelBooking) (travel.Booking, error) {
	return book(ctx, token, travel.KindHotel, func(ctx context.Context) (travel.Booking, error) {
		return s.api.BookHotel(ctx, token, req)
	})
}

// BookCab reserves a cab for the session owning token.
func (s *TravelService) BookCab(ctx context.Context, token string, req travel.CabBooking) (travel.Booking, error) {
	return book(ctx, token, travel.KindCab, func(ctx context.Context) (travel.Booking, error) {
		return s.api.BookCab(ctx, token, req)
	})
}

// search serves results from the cache when possible and collapses identical
// concurrent searches into one upstream call.
func search[T any](
	ctx context.Context,
	s *TravelService,
	kind travel.Kind,
	key string,
	fetch func(context.Context) ([]T, error),
) ([]T, error) {
	key = kind.Plural() + ":" + key

	if cached, ok := cacheGet[T](ctx, s, key); ok {
		s.count(MetricSearchCacheHit, kind)
		return cached, nil
	}
	s.count(MetricSearchCacheMiss, kind)

	// The shared fetch outlives any single caller; each caller stops waiting
	// when its own context ends.
	ch := s.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedSearchTimeout)
		defer cancel()
		results, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		s.cacheSet(fetchCtx, key, results)
		return results, nil
	})

	var v any
	select {
	case <-ctx.Done():
		return nil, callerGone(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, presentable(res.Err, kind.SearchFailedMessage())
		}
		v = res.Val
	}

	results, _ := v.([]T)
	if results == nil {
		results = []T{}
	}
	return results, nil
}

func callerGone(err error) error {
	code := apperrors.ErrCodeCanceled
	if errors.Is(err, context.DeadlineExceeded) {
		code = apperrors.ErrCodeTimeout
	}
	return &apperrors.AppError{Code: code, Message: travel.MsgNetworkError, Cause: err}
}

func cacheGet[T any](ctx context.Context, s *TravelService, key string) ([]T, bool) {
	if !s.cachingEnabled() {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "search cache read failed", "key", key, "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		s.logger.WarnContext(ctx, "search cache entry unreadable", "key", key, "error", err)
		return nil, false
	}
	return out, true
}

func (s *TravelService) cacheSet(ctx context.Context, key string, v any) {
	if !s.cachingEnabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.WarnContext(ctx, "search cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "search cache write failed", "key", key, "error", err)
	}
}

func (s *TravelService) cachingEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *TravelService) count(name string, kind travel.Kind) {
	if s.metrics != nil {
		s.metrics.Count(name, 1, map[string]string{"kind": string(kind)})
	}
}

func book(
	ctx context.Context,
	token string,
	kind travel.Kind,
	do func(context.Context) (travel.Booking, error),
) (travel.Booking, error) {
	if token == "" {
		return travel.Booking{}, LoginRequired(kind)
	}
	b, err := do(ctx)
	if err != nil {
		return travel.Booking{}, presentable(err, kind.BookFailedMessage())
	}
	if b.Type == "" {
		b.Type = kind.Label()
	}
	return b, nil
}

// LoginRequired returns the error shown when an anonymous visitor tries to book.
func LoginRequired(kind travel.Kind) error {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeValidation,
		Message: kind.LoginRequiredMessage(),
		Cause:   ErrLoginRequired,
	}
}

// presentable gives an upstream failure a user-facing message: the server's
// own text when it sent one, the network message for transport failures, the
// fallback otherwise. Unauthorized and validation errors pass through.
func presentable(err error, fallback string) error {
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
	case apperrors.ErrCodeUpstream:
		return &apperrors.AppError{
			Code:    appErr.Code,
			Message: apperrors.MessageOr(err, fallback),
			Cause:   err,
			Status:  appErr.Status,
		}
	default:
		return &apperrors.AppError{Code: appErr.Code, Message: fallback, Cause: err}
	}
}
