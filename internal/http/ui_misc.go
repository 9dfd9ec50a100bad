package httpx

import (
	"errors"
	"net/http"
)

// NotFound renders the 404 page for browsers and a JSON error for API clients.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusNotFound,
		ErrCode: "not_found",
		Err:     errors.New("not found"),
	})
}

func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, pageMeta("", "Page Not Found")).
		With("Code", "404").
		With("Message", "The page you're looking for doesn't exist.").
		Build()

	if h.T == nil {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	w = &statusOnRender{ResponseWriter: w, status: http.StatusNotFound}
	if err := h.T.RenderError(w, r, data); err != nil {
		http.Error(w, "Page not found", http.StatusNotFound)
	}
}
