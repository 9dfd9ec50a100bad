package httpx

import (
	"bytes"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/target/travelgo/internal/http/ui/viewmodel"
)

const appName = "TravelGo"

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T            *TemplateRenderer
	Auth         AuthService
	Travel       TravelService
	Account      AccountService
	CookieDomain string
	IsDev        bool // Development mode flag for enhanced error reporting
	Logger       *slog.Logger
	Now          func() time.Time
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UIHandlers) now() time.Time {
	if h != nil && h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// pageMeta builds metadata with the "<page> - TravelGo" document title convention.
func pageMeta(page, pageTitle string) PageMeta {
	title := appName
	if pageTitle != "" {
		title = pageTitle + " - " + appName
	}
	return PageMeta{Title: title, PageTitle: pageTitle, CurrentPage: page}
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta, now time.Time) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Year:        now.Year(),
	}

	if session, ok := GetUserSessionFromContext(r.Context()); ok && session.Authenticated() {
		layout.User = &viewmodel.User{Email: session.Email}
		layout.IsAuthenticated = true
	}
	return layout
}

func layoutData(layout viewmodel.Layout) map[string]any {
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"CSRFToken":       layout.CSRFToken,
		"Year":            layout.Year,
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// pageData starts a builder using the handler clock for the footer year.
func (h *UIHandlers) pageData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return NewTemplateData(r, meta, h.now())
}

// renderPage renders the full layout, or for HTMX navigation the document
// title, the navigation bar (out-of-band) and the page content.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	page, _ := data["CurrentPage"].(string)
	title, _ := data["Title"].(string)

	var buf bytes.Buffer
	buf.WriteString(`<title>` + html.EscapeString(title) + `</title>`)
	if err := h.T.Execute(&buf, "nav-oob", data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial nav render")
		return
	}
	if err := h.T.Execute(&buf, ContentTemplateFor(page), data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Error("failed to write partial page", "error", err)
	}
}

// renderFragment renders one named template, used for HTMX swaps into part of a page.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := h.T.RenderNamed(w, name, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "fragment "+name)
	}
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if !h.IsDev {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<div class="dev-error"><h2>Template Rendering Error</h2>` +
		`<p><strong>Context:</strong> ` + html.EscapeString(context) + `</p>` +
		`<p><strong>Path:</strong> ` + html.EscapeString(r.URL.Path) + `</p>` +
		`<pre>` + html.EscapeString(err.Error()) + `</pre></div>`))
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// handleUnauthorized applies the session-expiry rule: the upstream rejected
// the token, so the server-side session is dropped, the cookie cleared and
// the browser sent to the expired page.
func (h *UIHandlers) handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	if id := sessionIDFromRequest(r); id != "" && h.Auth != nil {
		if err := h.Auth.Expire(r.Context(), id); err != nil {
			h.logger().WarnContext(r.Context(), "expiring session failed", "error", err)
		}
	}
	clearSessionCookie(w, r, h.CookieDomain)
	redirect(w, r, PathExpired)
}
