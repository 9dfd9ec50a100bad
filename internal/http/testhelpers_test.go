package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/travelgo/internal/adapters/memory"
	domainauth "github.com/target/travelgo/internal/domain/auth"
	"github.com/target/travelgo/internal/mocks"
	"github.com/target/travelgo/internal/service"
	"github.com/target/travelgo/internal/testutil"
)

const (
	testCSRFToken = "test-csrf-token"
	testSessionID = "sess-test"
	testToken     = "upstream-token"
	testEmail     = "traveller@example.com"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS(StaticPathFromTest),
		Logger:     quietLogger(),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testApp is the full router backed by real services, an in-memory session
// store and a mocked travel API.
type testApp struct {
	handler  http.Handler
	api      *mocks.MockTravelAPI
	sessions *memory.SessionStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
	}

	ctrl := gomock.NewController(t)
	api := mocks.NewMockTravelAPI(ctrl)
	sessions := memory.NewSessionStore()
	logger := quietLogger()

	handler, err := NewRouter(RouterServices{
		Auth:    service.NewAuthService(service.AuthServiceOptions{API: api, Sessions: sessions, Logger: logger}),
		Travel:  service.NewTravelService(service.TravelServiceOptions{API: api, Logger: logger}),
		Account: service.NewAccountService(service.AccountServiceOptions{API: api, Logger: logger}),
		API:     api,
		LoginLimit: &RateLimitConfig{
			PerMinute: 60,
			Burst:     3,
		},
		Logger:     logger,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS(StaticPathFromTest),
		Now:        testutil.TestTime,
	})
	require.NoError(t, err)

	return &testApp{handler: handler, api: api, sessions: sessions}
}

// signIn stores a live session and returns it.
func (a *testApp) signIn(t *testing.T) domainauth.Session {
	t.Helper()
	sess := testutil.NewSession().WithID(testSessionID).WithToken(testToken).WithEmail(testEmail).Build()
	require.NoError(t, a.sessions.Save(context.Background(), sess))
	return sess
}

type testRequest struct {
	Method  string
	Path    string
	Form    url.Values
	HTMX    bool
	Session bool // send the session cookie
	Headers map[string]string
}

func (a *testApp) do(t *testing.T, tr testRequest) *httptest.ResponseRecorder {
	t.Helper()
	req := newTestRequest(tr)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// newTestRequest builds a browser-like request carrying a valid CSRF pair.
func newTestRequest(tr testRequest) *http.Request {
	method := tr.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if tr.Form != nil {
		body = strings.NewReader(tr.Form.Encode())
	}
	req := httptest.NewRequest(method, tr.Path, body)
	req.RemoteAddr = "192.0.2.10:40000"
	req.Header.Set("Accept", "text/html")
	if tr.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	if tr.HTMX {
		req.Header.Set("Hx-Request", "true")
	}
	if tr.Session {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: testSessionID})
	}
	for k, v := range tr.Headers {
		req.Header.Set(k, v)
	}
	return req
}

// findCookie returns the named Set-Cookie from a response, or nil.
func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
