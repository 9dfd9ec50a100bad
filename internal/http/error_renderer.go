package httpx

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
)

const (
	errMsgFixBelow = "Please fix the errors below."
	errMsgGeneric  = "An error occurred. Please try again."
)

// ErrorRenderer renders a page or fragment with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W http.ResponseWriter
	R *http.Request
	// Err is the error that occurred (optional when only field errors are reported)
	Err error
	// FieldErrors maps form field name to message
	FieldErrors map[string]string
	// Renderer draws the page; typically h.renderPage or a fragment renderer
	Renderer ErrorRenderer
	PageMeta PageMeta
	// Data carries extra template data such as the submitted form values
	Data map[string]any
	// StatusCode overrides DetermineErrorStatus when non-zero
	StatusCode int
	// ShowToast also raises a toast with the error message (HTMX only)
	ShowToast bool
	// Now stamps the layout; handlers pass their own clock. Zero means time.Now.
	Now time.Time
}

// DetermineErrorStatus maps an error to an HTTP status. HTMX requests get 0
// (meaning 200) because htmx does not swap error responses by default.
func DetermineErrorStatus(r *http.Request, err error) int {
	if err == nil || (r != nil && IsHTMX(r)) {
		return 0
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUnavailable, apperrors.ErrCodeTimeout:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeUpstream:
		return http.StatusBadGateway
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// RenderError renders an error response: field errors next to their inputs
// plus a general message above the form.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	builder := NewTemplateData(opts.R, opts.PageMeta, now)
	generalError := processError(opts.Err, &opts.FieldErrors)

	builder.WithFieldErrors(opts.FieldErrors)
	switch {
	case generalError != "":
		builder.WithError(generalError)
	case len(opts.FieldErrors) > 0:
		builder.WithError(errMsgFixBelow)
	}

	data := builder.Build()
	maps.Copy(data, opts.Data)

	if opts.ShowToast && generalError != "" {
		triggerToast(opts.W, generalError, "error")
	}

	status := opts.StatusCode
	if status == 0 {
		status = DetermineErrorStatus(opts.R, opts.Err)
	}
	if status != 0 {
		opts.W = &statusOnRender{ResponseWriter: opts.W, status: status}
	}
	opts.Renderer(opts.W, opts.R, data)
}

// processError turns err into the message shown to the user, recording a
// field-level message when the error names a form field.
func processError(err error, fieldErrors *map[string]string) string {
	if err == nil {
		return ""
	}

	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		msg := apperrors.MessageOr(err, errMsgFixBelow)
		if field := apperrors.GetField(err); field != "" && fieldErrors != nil {
			if *fieldErrors == nil {
				*fieldErrors = make(map[string]string)
			}
			(*fieldErrors)[field] = msg
		}
		return msg
	case apperrors.ErrCodeUnavailable, apperrors.ErrCodeTimeout, apperrors.ErrCodeCanceled:
		return apperrors.MessageOr(err, travel.MsgNetworkError)
	case "":
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return travel.MsgNetworkError
		}
		return errMsgGeneric
	default:
		return apperrors.MessageOr(err, errMsgGeneric)
	}
}

// statusOnRender applies a status code on the first write, after the
// renderer has set its headers.
type statusOnRender struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusOnRender) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	if code == http.StatusOK {
		code = w.status
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusOnRender) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusOnRender) Unwrap() http.ResponseWriter { return w.ResponseWriter }
