// Package travelapi is the HTTP client for the external travel booking API.
package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	domainauth "github.com/target/travelgo/internal/domain/auth"
	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/observability/metrics"
	"github.com/target/travelgo/internal/ports"
)

// Upstream endpoints.
const (
	pathLogin         = "/api/auth/login"
	pathRegister      = "/api/auth/register"
	pathFlightsSearch = "/api/flights/search"
	pathFlightsBook   = "/api/flights/book"
	pathHotelsSearch  = "/api/hotels/search"
	pathHotelsBook    = "/api/hotels/book"
	pathCabsSearch    = "/api/cabs/search"
	pathCabsBook      = "/api/cabs/book"
	pathProfile       = "/api/user/profile"
	pathBookings      = "/api/bookings"
)

// Metric names emitted per upstream call.
const (
	MetricRequest = metrics.UpstreamRequest
	MetricLatency = metrics.UpstreamLatency
)

const (
	defaultTimeout   = 15 * time.Second
	defaultErrorExpr = "error || message"
	maxResponseBytes = 4 << 20
	missingTokenMsg  = "Invalid or missing token"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the API origin, e.g. "https://api.example.com".
	BaseURL string
	// Timeout bounds each call when HTTPClient is nil. Defaults to 15s.
	Timeout time.Duration
	// RateLimit caps outbound requests per second. Zero or less disables limiting.
	RateLimit float64
	Burst     int
	// ErrorExpr is a JMESPath expression selecting the message from JSON error bodies.
	ErrorExpr  string
	HTTPClient *http.Client
	Metrics    ports.MetricsSink
	Logger     *slog.Logger
}

// Client talks to the travel API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	errorExpr string
	metrics   ports.MetricsSink
	logger    *slog.Logger
}

var _ ports.TravelAPI = (*Client)(nil)

// NewClient validates options and builds a Client.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("travel api base url %q must be an absolute URL", opts.BaseURL)
	}

	expr := strings.TrimSpace(opts.ErrorExpr)
	if expr == "" {
		expr = defaultErrorExpr
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("compile error expression %q: %w", expr, err)
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.Burst, 1))
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:   base,
		http:      hc,
		limiter:   limiter,
		errorExpr: expr,
		metrics:   opts.Metrics,
		logger:    logger.With("component", "travelapi"),
	}, nil
}

// call describes a single upstream request.
type call struct {
	endpoint string
	method   string
	path     string
	token    string
	auth     bool
	body     any
	out      any
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error) {
	var res domainauth.AuthResult
	err := c.do(ctx, call{endpoint: "auth.login", method: http.MethodPost, path: pathLogin, body: creds, out: &res})
	return res, err
}

// Register creates an account and returns its bearer token.
func (c *Client) Register(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResult, error) {
	var res domainauth.AuthResult
	err := c.do(ctx, call{endpoint: "auth.register", method: http.MethodPost, path: pathRegister, body: creds, out: &res})
	return res, err
}

// SearchFlights lists flight offers.
func (c *Client) SearchFlights(ctx context.Context, req travel.FlightSearch) ([]travel.Flight, error) {
	var res []travel.Flight
	err := c.do(ctx, call{endpoint: "flights.search", method: http.MethodPost, path: pathFlightsSearch, body: req, out: &res})
	return res, err
}

// BookFlight reserves a flight for the token's owner.
func (c *Client) BookFlight(ctx context.Context, token string, req travel.FlightBooking) (travel.Booking, error) {
	return c.book(ctx, "flights.book", pathFlightsBook, token, req)
}

// SearchHotels lists hotel offers.
func (c *Client) SearchHotels(ctx context.Context, req travel.HotelSearch) ([]travel.Hotel, error) {
	var res []travel.Hotel
	err := c.do(ctx, call{endpoint: "hotels.search", method: http.MethodPost, path: pathHotelsSearch, body: req, out: &res})
	return res, err
}

// BookHotel reserves a hotel stay for the token's owner.
func (c *Client) BookHotel(ctx context.Context, token string, req travel.HotelBooking) (travel.Booking, error) {
	return c.book(ctx, "hotels.book", pathHotelsBook, token, req)
}

// SearchCabs lists ride offers.
func (c *Client) SearchCabs(ctx context.Context, req travel.CabSearch) ([]travel.Cab, error) {
	var res []travel.Cab
	err := c.do(ctx, call{endpoint: "cabs.search", method: http.MethodPost, path: pathCabsSearch, body: req, out: &res})
	return res, err
}

// BookCab reserves a ride for the token's owner.
func (c *Client) BookCab(ctx context.Context, token string, req travel.CabBooking) (travel.Booking, error) {
	return c.book(ctx, "cabs.book", pathCabsBook, token, req)
}

// GetProfile loads the token owner's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (travel.Profile, error) {
	var res travel.Profile
	err := c.do(ctx, call{endpoint: "profile.get", method: http.MethodGet, path: pathProfile, token: token, auth: true, out: &res})
	return res, err
}

// UpdateProfile saves the editable profile fields and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, update travel.ProfileUpdate) (travel.Profile, error) {
	var res travel.Profile
	err := c.do(ctx, call{
		endpoint: "profile.update",
		method:   http.MethodPut,
		path:     pathProfile,
		token:    token,
		auth:     true,
		body:     update,
		out:      &res,
	})
	return res, err
}

// ListBookings returns every booking of the token's owner.
func (c *Client) ListBookings(ctx context.Context, token string) ([]travel.Booking, error) {
	var res []travel.Booking
	err := c.do(ctx, call{endpoint: "bookings.list", method: http.MethodGet, path: pathBookings, token: token, auth: true, out: &res})
	return res, err
}

// Ping issues a GET against the base URL. Any HTTP answer counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Unavailable(err, travel.MsgNetworkError)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	return resp.Body.Close()
}

func (c *Client) book(ctx context.Context, endpoint, path, token string, body any) (travel.Booking, error) {
	var res travel.Booking
	err := c.do(ctx, call{endpoint: endpoint, method: http.MethodPost, path: path, token: token, auth: true, body: body, out: &res})
	return res, err
}

func (c *Client) do(ctx context.Context, cl call) error {
	if cl.auth && cl.token == "" {
		return apperrors.Unauthorized(missingTokenMsg)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apperrors.Wrap(ctxErr, apperrors.ErrCodeCanceled, travel.MsgNetworkError)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeRateLimited, travel.MsgNetworkError)
	}

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "build upstream request")
	}

	start := time.Now()
	resp, err := c.clientFor(cl.token).Do(req)
	if err != nil {
		c.observe(cl.endpoint, "error", time.Since(start), err)
		c.logger.WarnContext(ctx, "travel api request failed", "endpoint", cl.endpoint, "error", err)
		return apperrors.Unavailable(err, travel.MsgNetworkError)
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	callErr := c.result(ctx, cl, resp.StatusCode, body, readErr)
	c.observe(cl.endpoint, strconv.Itoa(resp.StatusCode), elapsed, callErr)
	c.logger.DebugContext(ctx, "travel api request",
		"endpoint", cl.endpoint, "status", resp.StatusCode, "duration", elapsed)
	return callErr
}

// result classifies a completed exchange and decodes a 2xx body into cl.out.
func (c *Client) result(ctx context.Context, cl call, status int, body []byte, readErr error) error {
	if readErr != nil {
		return apperrors.Unavailable(readErr, travel.MsgNetworkError)
	}

	switch {
	case status == http.StatusUnauthorized && cl.auth:
		err := apperrors.Unauthorized(travel.MsgSessionExpired)
		err.Status = status
		return err
	case status < 200 || status >= 300:
		msg := c.errorMessage(body)
		c.logger.WarnContext(ctx, "travel api returned error",
			"endpoint", cl.endpoint, "status", status, "message", msg)
		return apperrors.Upstream(status, msg)
	}

	if cl.out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, cl.out); err != nil {
		return apperrors.Unavailable(fmt.Errorf("decode %s response: %w", cl.endpoint, err), travel.MsgNetworkError)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", cl.endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// clientFor returns an HTTP client that attaches the bearer token, or the
// shared anonymous client when token is empty.
func (c *Client) clientFor(token string) *http.Client {
	if token == "" {
		return c.http
	}
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout:       c.http.Timeout,
		CheckRedirect: c.http.CheckRedirect,
		Jar:           c.http.Jar,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		},
	}
}

// errorMessage extracts a human-readable message from a JSON error body.
// Plain-text and unrecognised bodies yield "".
func (c *Client) errorMessage(body []byte) string {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	res, err := jmespath.Search(c.errorExpr, data)
	if err != nil {
		return ""
	}
	if s, ok := res.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func (c *Client) observe(endpoint, status string, elapsed time.Duration, err error) {
	if c.metrics == nil {
		return
	}
	metrics.EmitUpstream(c.metrics, metrics.UpstreamCall{
		Endpoint: endpoint,
		Status:   status,
		Duration: elapsed,
		Err:      err,
	})
}
