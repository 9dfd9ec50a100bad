package httpx

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/service"
)

const msgTooManyAttempts = "Too many attempts. Please wait a moment and try again."

// LoginPage renders the login form. GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if IsSignedIn(r.Context()) {
		redirect(w, r, postLoginRedirect(r.URL.Query().Get("redirect_uri")))
		return
	}
	data := h.pageData(r, pageMeta(PageLogin, "Login")).
		With("RedirectURI", r.URL.Query().Get("redirect_uri")).
		Build()
	h.renderPage(w, r, data)
}

// Login exchanges the submitted credentials for a session. POST /login.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	in := service.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	redirectURI := r.PostFormValue("redirect_uri")

	sess, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		h.logger().InfoContext(r.Context(), "login rejected", "code", apperrors.GetCode(err))
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer: h.renderPage,
			Now:      h.now(),
			PageMeta: pageMeta(PageLogin, "Login"),
			Data:     map[string]any{"Email": in.Email, "RedirectURI": redirectURI},
		})
		return
	}

	setSessionCookie(w, r, h.CookieDomain, sess)
	redirect(w, r, postLoginRedirect(redirectURI))
}

// SignupPage renders the registration form. GET /signup.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	if IsSignedIn(r.Context()) {
		redirect(w, r, PathDashboard)
		return
	}
	h.renderPage(w, r, h.pageData(r, pageMeta(PageSignup, "Sign Up")).Build())
}

// Signup registers a new account and signs it in. POST /signup.
func (h *UIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	in := service.RegisterInput{
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	sess, err := h.Auth.Register(r.Context(), in)
	if err != nil {
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer: h.renderPage,
			Now:      h.now(),
			PageMeta: pageMeta(PageSignup, "Sign Up"),
			Data:     map[string]any{"Email": in.Email},
		})
		return
	}

	setSessionCookie(w, r, h.CookieDomain, sess)
	redirect(w, r, PathDashboard)
}

// Logout ends the session and returns to the home page. POST /logout.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if id := sessionIDFromRequest(r); id != "" {
		if err := h.Auth.Logout(r.Context(), id); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(w, r, h.CookieDomain)
	redirect(w, r, PathHome)
}

// Expired tells the user their session ended. GET /auth/expired.
func (h *UIHandlers) Expired(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, pageMeta(PageExpired, "Session Expired")).
		With("Message", travel.MsgSessionExpired).
		Build()
	h.renderPage(w, r, data)
}

// LoginRateLimited re-renders the login or sign-up form with a throttling message.
func (h *UIHandlers) LoginRateLimited(w http.ResponseWriter, r *http.Request) {
	meta := pageMeta(PageLogin, "Login")
	if strings.HasPrefix(r.URL.Path, PathSignup) {
		meta = pageMeta(PageSignup, "Sign Up")
	}
	RenderError(ErrorOpts{
		W: w, R: r,
		Err:      apperrors.RateLimited(msgTooManyAttempts),
		Renderer: h.renderPage,
		Now:      h.now(),
		PageMeta: meta,
		Data: map[string]any{
			"Email":       r.PostFormValue("email"),
			"RedirectURI": r.PostFormValue("redirect_uri"),
		},
	})
}

// postLoginRedirect returns the requested same-origin destination, or the dashboard.
func postLoginRedirect(candidate string) string {
	if strings.TrimSpace(candidate) == "" {
		return PathDashboard
	}
	if p := safeRedirectPath(candidate); p != PathHome || candidate == PathHome {
		return p
	}
	return PathDashboard
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return PathHome
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") ||
		strings.HasPrefix(candidate, "//") || strings.Contains(candidate, `\`) {
		return PathHome
	}
	return candidate
}
