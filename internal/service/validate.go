package service

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
)

const (
	tagPhone        = "phone"
	tagAfterDepart  = "after_departure"
	tagAfterCheckIn = "after_checkin"

	phoneChars = "0123456789+-() ."
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Field labels used when a rule message names the field.
var fieldLabels = map[string]string{
	"password":      "Password",
	"name":          "Name",
	"address":       "Address",
	"phone":         "Phone",
	"departureDate": "Departure date",
	"returnDate":    "Return date",
	"checkIn":       "Check-in date",
	"checkOut":      "Check-out date",
	"pickupTime":    "Pick-up time",
}

// Count fields share one message for both bounds.
var rangeMessages = map[string]string{
	"adults":   "Adults must be between 1 and 9",
	"children": "Children must be between 0 and 9",
	"guests":   "Guests must be between 1 and 20",
	"rooms":    "Rooms must be between 1 and 10",
}

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation(tagPhone, validPhone)
		validate.RegisterStructValidation(flightDatesInOrder, travel.FlightSearch{})
		validate.RegisterStructValidation(stayDatesInOrder, travel.HotelSearch{})
	})
	return validate
}

func validPhone(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !strings.ContainsRune(phoneChars, r) {
			return false
		}
	}
	return true
}

// flightDatesInOrder rejects a return before departure. Malformed dates are
// left to the datetime rule.
func flightDatesInOrder(sl validator.StructLevel) {
	s := sl.Current().Interface().(travel.FlightSearch)
	if s.ReturnDate == "" {
		return
	}
	dep, err1 := time.Parse(travel.DateLayout, s.DepartureDate)
	ret, err2 := time.Parse(travel.DateLayout, s.ReturnDate)
	if err1 != nil || err2 != nil {
		return
	}
	if ret.Before(dep) {
		sl.ReportError(s.ReturnDate, "returnDate", "ReturnDate", tagAfterDepart, "")
	}
}

// stayDatesInOrder requires at least one night between check-in and check-out.
func stayDatesInOrder(sl validator.StructLevel) {
	s := sl.Current().Interface().(travel.HotelSearch)
	in, err1 := time.Parse(travel.DateLayout, s.CheckIn)
	out, err2 := time.Parse(travel.DateLayout, s.CheckOut)
	if err1 != nil || err2 != nil {
		return
	}
	if !out.After(in) {
		sl.ReportError(s.CheckOut, "checkOut", "CheckOut", tagAfterCheckIn, "")
	}
}

// validateStruct runs struct-tag validation and converts the first failure into
// a field-scoped validation error carrying a user-facing message.
func validateStruct(v any) error {
	verrs, err := structErrors(v)
	if err != nil || len(verrs) == 0 {
		return err
	}
	if fe, ok := firstRequired(verrs); ok {
		return apperrors.ValidationField(fe.Field(), travel.MsgMissingFields)
	}
	fe := verrs[0]
	return apperrors.ValidationField(fe.Field(), fieldMessage(fe))
}

// validateSearch is validateStruct for search forms, where any blank required
// field is reported once for the whole form as ErrMissingFields.
func validateSearch(v any) error {
	verrs, err := structErrors(v)
	if err != nil || len(verrs) == 0 {
		return err
	}
	if _, ok := firstRequired(verrs); ok {
		return ErrMissingFields
	}
	fe := verrs[0]
	return apperrors.ValidationField(fe.Field(), fieldMessage(fe))
}

func structErrors(v any) (validator.ValidationErrors, error) {
	err := formValidator().Struct(v)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "validate form")
	}
	return verrs, nil
}

func firstRequired(verrs validator.ValidationErrors) (validator.FieldError, bool) {
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fe, true
		}
	}
	return nil, false
}

func fieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "email":
		return "Please enter a valid email address"
	case "eqfield":
		return "Passwords do not match"
	case "min", "max":
		if msg, ok := rangeMessages[fe.Field()]; ok {
			return msg
		}
		if fe.Tag() == "min" {
			return label + " must be at least " + fe.Param() + " characters"
		}
		return label + " cannot exceed " + fe.Param() + " characters"
	case "datetime":
		if fe.Param() == travel.DateTimeLayout {
			return label + " must be a valid date and time"
		}
		return label + " must be a valid date"
	case tagPhone:
		return "Phone may only contain digits, spaces and + - ( )"
	case tagAfterDepart:
		return "Return date cannot be before the departure date"
	case tagAfterCheckIn:
		return "Check-out date must be after the check-in date"
	default:
		return "Invalid value for " + label
	}
}
