package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
)

// formInt reads an optional integer field. Blank means zero.
func formInt(r *http.Request, field, label string) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.ValidationField(field, label+" must be a whole number")
	}
	return n, nil
}

func parseFlightSearch(r *http.Request) (travel.FlightSearch, error) {
	req := travel.FlightSearch{
		From:          r.PostFormValue("from"),
		To:            r.PostFormValue("to"),
		DepartureDate: r.PostFormValue("departureDate"),
		ReturnDate:    r.PostFormValue("returnDate"),
		ClassType:     r.PostFormValue("classType"),
	}
	var err error
	if req.Adults, err = formInt(r, "adults", "Adults"); err != nil {
		return req, err
	}
	if req.Children, err = formInt(r, "children", "Children"); err != nil {
		return req, err
	}
	return req, nil
}

func parseHotelSearch(r *http.Request) (travel.HotelSearch, error) {
	req := travel.HotelSearch{
		City:     r.PostFormValue("city"),
		CheckIn:  r.PostFormValue("checkIn"),
		CheckOut: r.PostFormValue("checkOut"),
	}
	var err error
	if req.Guests, err = formInt(r, "guests", "Guests"); err != nil {
		return req, err
	}
	if req.Rooms, err = formInt(r, "rooms", "Rooms"); err != nil {
		return req, err
	}
	return req, nil
}

func parseCabSearch(r *http.Request) travel.CabSearch {
	return travel.CabSearch{
		Pickup:     r.PostFormValue("pickup"),
		Dropoff:    r.PostFormValue("dropoff"),
		PickupTime: r.PostFormValue("pickupTime"),
	}
}

func parseFlightBooking(r *http.Request) travel.FlightBooking {
	return travel.FlightBooking{
		FlightNumber:  strings.TrimSpace(r.PostFormValue("flightNumber")),
		From:          strings.TrimSpace(r.PostFormValue("from")),
		To:            strings.TrimSpace(r.PostFormValue("to")),
		DepartureDate: strings.TrimSpace(r.PostFormValue("departureDate")),
	}
}

func parseHotelBooking(r *http.Request) travel.HotelBooking {
	return travel.HotelBooking{
		Hotel:    strings.TrimSpace(r.PostFormValue("hotel")),
		City:     strings.TrimSpace(r.PostFormValue("city")),
		CheckIn:  strings.TrimSpace(r.PostFormValue("checkIn")),
		CheckOut: strings.TrimSpace(r.PostFormValue("checkOut")),
	}
}

func parseCabBooking(r *http.Request) travel.CabBooking {
	return travel.CabBooking{
		Pickup:     strings.TrimSpace(r.PostFormValue("pickup")),
		Dropoff:    strings.TrimSpace(r.PostFormValue("dropoff")),
		PickupTime: strings.TrimSpace(r.PostFormValue("pickupTime")),
	}
}

func parseProfileUpdate(r *http.Request) travel.ProfileUpdate {
	return travel.ProfileUpdate{
		Name:    r.PostFormValue("name"),
		Address: r.PostFormValue("address"),
		Phone:   r.PostFormValue("phone"),
	}
}

// defaultSearchForms seeds the three search forms with their default party sizes.
func defaultSearchForms() map[string]any {
	return map[string]any{
		"FlightForm": travel.FlightSearch{Adults: 1},
		"HotelForm":  travel.HotelSearch{Guests: 1, Rooms: 1},
		"CabForm":    travel.CabSearch{},
	}
}
