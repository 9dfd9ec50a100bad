// Package errors reduces failures to short class names for metric tags and logs.
package errors

import (
	"context"
	goerrors "errors"
	"net"
	"reflect"
	"strings"
	"syscall"

	apperrors "github.com/target/travelgo/internal/errors"
)

// Classes returned by Classify besides application error codes.
const (
	ClassTimeout  = "timeout"
	ClassCanceled = "canceled"
	ClassDNS      = "dns"
	ClassRefused  = "connection_refused"
	ClassReset    = "connection_reset"
	ClassUnknown  = "unknown"
)

// Classify names the cause of err: transport failures first (timeout, dns,
// refused), then the application error code, then the innermost error type
// in snake case. Returns "" for nil.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	if class := transportClass(err); class != "" {
		return class
	}

	var appErr *apperrors.AppError
	if goerrors.As(err, &appErr) {
		// Unavailable and internal errors are only as useful as their cause.
		opaque := appErr.Code == apperrors.ErrCodeUnavailable || appErr.Code == apperrors.ErrCodeInternal
		if !opaque || appErr.Cause == nil {
			return string(appErr.Code)
		}
		return typeName(appErr.Cause)
	}

	return typeName(err)
}

func transportClass(err error) string {
	switch {
	case goerrors.Is(err, context.DeadlineExceeded):
		return ClassTimeout
	case goerrors.Is(err, context.Canceled):
		return ClassCanceled
	case goerrors.Is(err, syscall.ECONNREFUSED):
		return ClassRefused
	case goerrors.Is(err, syscall.ECONNRESET):
		return ClassReset
	}

	var dnsErr *net.DNSError
	if goerrors.As(err, &dnsErr) {
		return ClassDNS
	}
	var netErr net.Error
	if goerrors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}
	return ""
}

// typeName unwraps to the innermost error and renders its type, e.g. *url.Error -> url_error.
func typeName(err error) string {
	for {
		next := goerrors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ClassUnknown
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), ".", "_"))
	if name == "" {
		return ClassUnknown
	}
	return name
}
