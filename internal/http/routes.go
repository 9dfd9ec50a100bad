package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	travelgo "github.com/target/travelgo"
	"github.com/target/travelgo/internal/ports"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth    AuthService
	Travel  TravelService
	Account AccountService
	// API backs the readiness probe (optional).
	API          Pinger
	CookieDomain string
	// LoginLimit throttles POST /login and POST /signup per client IP (optional).
	LoginLimit *RateLimitConfig
	// Compression enables gzip when non-nil.
	Compression *CompressionConfig
	// Metrics records request counts and latency (optional).
	Metrics ports.MetricsSink
	// MetricsHandler serves GET /metrics when set.
	MetricsHandler http.Handler
	IsDev       bool // Serve templates and static files from disk
	Logger      *slog.Logger
	// TemplateFS and StaticFS override the embedded or on-disk trees (tests).
	TemplateFS fs.FS
	StaticFS   fs.FS
	Now        func() time.Time
}

// NewRouter creates the HTTP handler: the UI routes wrapped in
// Recover -> Logging -> Metrics -> Compression -> BrowserDetection.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if templateFS == nil || staticFS == nil {
		tfs, sfs := frontendFS(services.IsDev, logger)
		if templateFS == nil {
			templateFS = tfs
		}
		if staticFS == nil {
			staticFS = sfs
		}
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		StaticFS:   staticFS,
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	h := &UIHandlers{
		T:            tr,
		Auth:         services.Auth,
		Travel:       services.Travel,
		Account:      services.Account,
		CookieDomain: services.CookieDomain,
		IsDev:        services.IsDev,
		Logger:       logger,
		Now:          services.Now,
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.API, logger))
	mux.Handle("GET /static/", staticHandler(staticFS, services.IsDev))
	if services.MetricsHandler != nil {
		mux.Handle("GET /metrics", services.MetricsHandler)
	}

	registerUIRoutes(mux, h, uiRouteConfig{
		Auth:         services.Auth,
		CookieDomain: services.CookieDomain,
		LoginLimit:   services.LoginLimit,
	})

	var handler http.Handler = mux
	handler = BrowserDetection()(handler)
	if services.Compression != nil {
		cc := *services.Compression
		if cc.Logger == nil {
			cc.Logger = logger
		}
		handler = Compression(cc)(handler)
	}
	handler = Metrics(services.Metrics)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

// frontendFS picks the template and static trees: disk in dev mode, the
// embedded copies otherwise.
func frontendFS(isDev bool, logger *slog.Logger) (templates, static fs.FS) {
	if isDev {
		return os.DirFS(TemplatePathFromRoot), os.DirFS(StaticPathFromRoot)
	}

	templates, err := fs.Sub(travelgo.TemplateFS, TemplatePathFromRoot)
	if err != nil {
		logger.Warn("embedded templates unavailable; falling back to disk", "error", err)
		templates = os.DirFS(TemplatePathFromRoot)
	}
	static, err = fs.Sub(travelgo.StaticFS, StaticPathFromRoot)
	if err != nil {
		logger.Warn("embedded static assets unavailable; falling back to disk", "error", err)
		static = os.DirFS(StaticPathFromRoot)
	}
	return templates, static
}

// staticHandler serves /static/*. Versioned URLs (?v=<hash>) are cached for
// a year; everything else, and everything in dev mode, revalidates.
func staticHandler(staticFS fs.FS, isDev bool) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		if !isDev && r.URL.Query().Get("v") != "" {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		files.ServeHTTP(w, r)
	})
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth         AuthService
	CookieDomain string
	LoginLimit   *RateLimitConfig
}

func (cfg uiRouteConfig) csrf() func(http.Handler) http.Handler {
	return CSRFProtection(CSRFConfig{CookieDomain: cfg.CookieDomain})
}

// optional attaches the session when present; anonymous visitors pass through.
func (cfg uiRouteConfig) optional() func(http.Handler) http.Handler {
	csrf := cfg.csrf()
	if cfg.Auth == nil {
		return csrf
	}
	auth := OptionalAuth(cfg.Auth, cfg.CookieDomain)
	return func(h http.Handler) http.Handler { return csrf(auth(h)) }
}

// required sends anonymous visitors to the login page.
func (cfg uiRouteConfig) required() func(http.Handler) http.Handler {
	csrf := cfg.csrf()
	if cfg.Auth == nil {
		return csrf
	}
	auth := RequireAuthBrowser(cfg.Auth, cfg.CookieDomain)
	return func(h http.Handler) http.Handler { return csrf(auth(h)) }
}

// registerUIRoutes delegates to per-area registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerUIServiceRoutes(mux, h, cfg)
	registerUIAuthRoutes(mux, h, cfg)
	registerUIAccountRoutes(mux, h, cfg)

	// Anything unmatched renders the 404 page with the visitor's navigation.
	mux.Handle("/", cfg.optional()(http.HandlerFunc(h.NotFound)))
}

// registerUIServiceRoutes wires the home page and the search/book flows.
func registerUIServiceRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.optional()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Home)))

	mux.Handle("GET /flights", wrap(http.HandlerFunc(h.FlightsPage)))
	mux.Handle("POST /flights/search", wrap(http.HandlerFunc(h.SearchFlights)))
	mux.Handle("POST /flights/book", wrap(http.HandlerFunc(h.BookFlight)))

	mux.Handle("GET /hotels", wrap(http.HandlerFunc(h.HotelsPage)))
	mux.Handle("POST /hotels/search", wrap(http.HandlerFunc(h.SearchHotels)))
	mux.Handle("POST /hotels/book", wrap(http.HandlerFunc(h.BookHotel)))

	mux.Handle("GET /cabs", wrap(http.HandlerFunc(h.CabsPage)))
	mux.Handle("POST /cabs/search", wrap(http.HandlerFunc(h.SearchCabs)))
	mux.Handle("POST /cabs/book", wrap(http.HandlerFunc(h.BookCab)))
}

// registerUIAuthRoutes wires login, sign-up, logout and the expired page.
func registerUIAuthRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.optional()

	throttle := func(next http.Handler) http.Handler { return next }
	if cfg.LoginLimit != nil {
		lc := *cfg.LoginLimit
		if lc.OnLimited == nil {
			lc.OnLimited = http.HandlerFunc(h.LoginRateLimited)
		}
		throttle = RateLimit(NewClientRateLimiter(lc))
	}

	mux.Handle("GET "+PathLogin, wrap(http.HandlerFunc(h.LoginPage)))
	mux.Handle("POST "+PathLogin, wrap(throttle(http.HandlerFunc(h.Login))))
	mux.Handle("GET "+PathSignup, wrap(http.HandlerFunc(h.SignupPage)))
	mux.Handle("POST "+PathSignup, wrap(throttle(http.HandlerFunc(h.Signup))))
	mux.Handle("POST "+PathLogout, wrap(http.HandlerFunc(h.Logout)))
	mux.Handle("GET "+PathExpired, wrap(http.HandlerFunc(h.Expired)))
}

// registerUIAccountRoutes wires the signed-in pages.
func registerUIAccountRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.required()
	mux.Handle("GET "+PathDashboard, wrap(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET "+PathProfile, wrap(http.HandlerFunc(h.Profile)))
	mux.Handle("GET "+PathProfile+"/edit", wrap(http.HandlerFunc(h.ProfileEdit)))
	mux.Handle("POST "+PathProfile, wrap(http.HandlerFunc(h.ProfileUpdate)))
}
