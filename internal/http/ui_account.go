package httpx

import (
	"net/http"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/http/ui/viewmodel"
	"github.com/target/travelgo/internal/service"
)

// Dashboard renders stats and recent bookings. GET /dashboard.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	meta := pageMeta(PageDashboard, "Dashboard")

	var email string
	if s, ok := GetUserSessionFromContext(r.Context()); ok {
		email = s.Email
	}

	view, err := h.Account.Dashboard(r.Context(), sessionToken(r.Context()), email)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.handleUnauthorized(w, r)
			return
		}
		h.logger().WarnContext(r.Context(), "dashboard load failed", "error", err)
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer: h.renderPage,
			Now:      h.now(),
			PageMeta: meta,
			Data: map[string]any{
				"DisplayName": travel.Profile{}.DisplayName(email),
				"Email":       email,
				"Stats":       travel.BookingStats{},
				"Kinds":       travel.Kinds,
			},
		})
		return
	}

	if view.Profile.Email != "" {
		email = view.Profile.Email
	}
	data := h.pageData(r, meta).
		With("DisplayName", view.DisplayName).
		With("Email", email).
		With("Stats", view.Stats).
		With("Recent", viewmodel.BookingRows(view.Recent, h.now())).
		With("HasMore", view.HasMore).
		With("Kinds", travel.Kinds).
		Build()
	h.renderPage(w, r, data)
}

// Profile renders account details and booking history. GET /profile.
func (h *UIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, PageProfile, "")
}

// ProfileEdit renders the profile form prefilled with current values. GET /profile/edit.
func (h *UIHandlers) ProfileEdit(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, PageProfileEdit, "")
}

func (h *UIHandlers) renderProfile(w http.ResponseWriter, r *http.Request, page, success string) {
	meta := pageMeta(page, "Profile")

	view, err := h.Account.Profile(r.Context(), sessionToken(r.Context()))
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.handleUnauthorized(w, r)
			return
		}
		h.logger().WarnContext(r.Context(), "profile load failed", "error", err)
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer: h.renderPage,
			Now:      h.now(),
			PageMeta: pageMeta(PageProfile, "Profile"),
			Data:     map[string]any{"ProfileUnavailable": true},
		})
		return
	}

	data := h.pageData(r, meta).
		WithSuccess(success).
		With("Profile", view.Profile).
		With("Form", travel.UpdateFrom(view.Profile)).
		With("Bookings", viewmodel.BookingRows(view.Bookings, h.now())).
		With("HistoryUnavailable", view.HistoryUnavailable).
		Build()
	h.renderPage(w, r, data)
}

// ProfileUpdate saves the edited profile. POST /profile.
func (h *UIHandlers) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	update := parseProfileUpdate(r)

	saved, err := h.Account.UpdateProfile(r.Context(), sessionToken(r.Context()), update)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.handleUnauthorized(w, r)
			return
		}
		profile := travel.Profile{Name: update.Name, Address: update.Address, Phone: update.Phone}
		if s, ok := GetUserSessionFromContext(r.Context()); ok {
			profile.Email = s.Email
		}
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer: h.renderPage,
			Now:      h.now(),
			PageMeta: pageMeta(PageProfileEdit, "Profile"),
			Data: map[string]any{
				"Profile":  profile,
				"Form":     update,
				"Bookings": []viewmodel.BookingRow{},
			},
		})
		return
	}

	h.logger().InfoContext(r.Context(), "profile updated", "profile_id", saved.ID.String())
	if IsHTMX(r) {
		triggerToast(w, service.MsgProfileUpdated, "success")
		SetHXPushURL(w, PathProfile)
	}
	h.renderProfile(w, r, PageProfile, service.MsgProfileUpdated)
}
