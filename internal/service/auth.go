package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"

	domainauth "github.com/target/travelgo/internal/domain/auth"
	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/observability/metrics"
	"github.com/target/travelgo/internal/ports"
)

const (
	defaultSessionTTL = 24 * time.Hour

	// MetricSessionExpired counts sessions dropped because the travel API rejected their token.
	MetricSessionExpired = metrics.SessionExpired

	msgLoginFailed  = "Login failed. Please check your email and password."
	msgSignupFailed = "Sign up failed. Please try again."
)

// ErrSessionExpired is returned for sessions that are missing, expired or rejected upstream.
var ErrSessionExpired = apperrors.Unauthorized(travel.MsgSessionExpired)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API      ports.TravelAPI
	Sessions ports.SessionStore
	// SessionTTL caps session lifetime; tokens with an earlier exp claim shorten it.
	SessionTTL time.Duration
	Metrics    ports.MetricsSink
	Logger     *slog.Logger
	Now        func() time.Time
}

// AuthService signs users in against the travel API and keeps their token in a server-side session.
type AuthService struct {
	api      ports.TravelAPI
	sessions ports.SessionStore
	ttl      time.Duration
	metrics  ports.MetricsSink
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:      opts.API,
		sessions: opts.Sessions,
		ttl:      ttl,
		metrics:  opts.Metrics,
		logger:   logger.With("component", "auth_service"),
		now:      now,
	}
}

// LoginInput is the submitted login form.
type LoginInput struct {
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterInput is the submitted sign-up form.
type RegisterInput struct {
	Email           string `form:"email"           validate:"required,email"`
	Password        string `form:"password"        validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

// Login validates credentials, exchanges them for a token and opens a session.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domainauth.Session, error) {
	creds := domainauth.Credentials{Email: in.Email, Password: in.Password}.Normalize()
	in.Email = creds.Email
	if err := validateStruct(in); err != nil {
		return domainauth.Session{}, err
	}

	res, err := s.api.Login(ctx, creds)
	if err != nil {
		return domainauth.Session{}, credentialError(err, msgLoginFailed)
	}
	return s.openSession(ctx, res, creds.Email)
}

// Register validates the sign-up form, creates the account upstream and opens a session.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domainauth.Session, error) {
	creds := domainauth.Credentials{Email: in.Email, Password: in.Password}.Normalize()
	in.Email = creds.Email
	if err := validateStruct(in); err != nil {
		return domainauth.Session{}, err
	}

	res, err := s.api.Register(ctx, creds)
	if err != nil {
		return domainauth.Session{}, credentialError(err, msgSignupFailed)
	}
	return s.openSession(ctx, res, creds.Email)
}

func (s *AuthService) openSession(ctx context.Context, res domainauth.AuthResult, submittedEmail string) (domainauth.Session, error) {
	if res.Token == "" {
		return domainauth.Session{}, apperrors.Upstream(0, "The travel service did not return a token")
	}

	email := res.Email
	if email == "" {
		email = submittedEmail
	}

	sess := domainauth.Session{
		ID:        generateSessionID(),
		Token:     res.Token,
		Email:     email,
		ExpiresAt: s.sessionExpiry(res.Token),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}

	s.logger.InfoContext(ctx, "session opened", "session_id", sess.ID, "expires_at", sess.ExpiresAt)
	return sess, nil
}

// sessionExpiry returns now+TTL, shortened to the token's exp claim when the
// token is a JWT expiring sooner. The signature is not checked; the travel API
// remains the authority on token validity.
func (s *AuthService) sessionExpiry(token string) time.Time {
	expiry := s.now().Add(s.ttl)
	if exp, ok := tokenExpiry(token); ok && exp.After(s.now()) && exp.Before(expiry) {
		return exp
	}
	return expiry
}

func tokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case json.Number:
		v, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(v, 0), true
	default:
		return time.Time{}, false
	}
}

// GetSession retrieves a live session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Expire drops a session whose token the travel API rejected.
func (s *AuthService) Expire(ctx context.Context, sessionID string) error {
	if s.metrics != nil {
		s.metrics.Count(MetricSessionExpired, 1, nil)
	}
	s.logger.InfoContext(ctx, "session expired by upstream", "session_id", sessionID)
	return s.Logout(ctx, sessionID)
}

// credentialError maps upstream failures on login/sign-up to user-facing errors.
// A 401 here means bad credentials, not an expired session.
func credentialError(err error, fallback string) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, fallback)
	}
	switch appErr.Code {
	case apperrors.ErrCodeUpstream, apperrors.ErrCodeUnauthorized:
		msg := appErr.Message
		if msg == "" || appErr.Code == apperrors.ErrCodeUnauthorized {
			msg = fallback
		}
		return &apperrors.AppError{Code: apperrors.ErrCodeValidation, Message: msg, Cause: err, Status: appErr.Status}
	default:
		return err
	}
}

// generateSessionID creates a random, URL-safe session ID.
func generateSessionID() string {
	return uuid.New().String()
}
