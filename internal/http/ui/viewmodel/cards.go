package viewmodel

import (
	"strconv"
	"time"

	"github.com/target/travelgo/internal/domain/travel"
	"github.com/target/travelgo/internal/http/uiutil"
)

const maxAmenities = 3

// FlightCard is one flight result plus the fields its Book button posts.
type FlightCard struct {
	FlightNumber  string
	Airline       string
	From          string
	To            string
	DepartureTime string
	ArrivalTime   string
	Price         string
	Currency      string
	Booking       travel.FlightBooking
}

// HotelCard is one hotel result.
type HotelCard struct {
	Name          string
	City          string
	Rating        string
	CheckIn       string
	CheckOut      string
	Amenities     []string
	Guests        int
	Rooms         int
	PricePerNight string
	Currency      string
	Booking       travel.HotelBooking
}

// CabCard is one cab offer.
type CabCard struct {
	Provider          string
	VehicleType       string
	Pickup            string
	Dropoff           string
	PickupTime        string
	EstimatedDuration string
	Price             string
	Currency          string
	Booking           travel.CabBooking
}

// BookingRow is one booking in the dashboard or profile history.
type BookingRow struct {
	ID       string
	Type     string
	Kind     string
	Details  string
	BookedOn string
}

// FlightCards maps search results to cards. Booking fields come from the
// searched route and date, which stay plain codes even when the offer
// describes airports as objects.
func FlightCards(flights []travel.Flight, req travel.FlightSearch) []FlightCard {
	out := make([]FlightCard, 0, len(flights))
	for _, f := range flights {
		out = append(out, FlightCard{
			FlightNumber:  f.FlightNumber.String(),
			Airline:       f.AirlineOrDefault(),
			From:          f.From.String(),
			To:            f.To.String(),
			DepartureTime: f.DepartureTime.String(),
			ArrivalTime:   f.ArrivalTime.String(),
			Price:         f.Price.String(),
			Currency:      f.Currency,
			Booking: travel.FlightBooking{
				FlightNumber:  f.FlightNumber.String(),
				From:          req.From,
				To:            req.To,
				DepartureDate: req.DepartureDate,
			},
		})
	}
	return out
}

// HotelCards maps search results to cards, carrying the searched party size.
func HotelCards(hotels []travel.Hotel, req travel.HotelSearch) []HotelCard {
	out := make([]HotelCard, 0, len(hotels))
	for _, h := range hotels {
		card := HotelCard{
			Name:          h.Name,
			City:          firstNonEmpty(h.City, req.City),
			CheckIn:       firstNonEmpty(h.CheckIn, req.CheckIn),
			CheckOut:      firstNonEmpty(h.CheckOut, req.CheckOut),
			Amenities:     h.TopAmenities(maxAmenities),
			Guests:        req.Guests,
			Rooms:         req.Rooms,
			PricePerNight: h.PricePerNight.String(),
			Currency:      h.Currency,
		}
		if h.Rating.Valid {
			card.Rating = strconv.FormatFloat(h.Rating.Value, 'f', 1, 64)
		}
		card.Booking = travel.HotelBooking{
			Hotel:    h.Name,
			City:     card.City,
			CheckIn:  card.CheckIn,
			CheckOut: card.CheckOut,
		}
		out = append(out, card)
	}
	return out
}

// CabCards maps cab offers to cards.
func CabCards(cabs []travel.Cab, req travel.CabSearch) []CabCard {
	out := make([]CabCard, 0, len(cabs))
	for _, c := range cabs {
		card := CabCard{
			Provider:          c.Provider,
			VehicleType:       c.VehicleType,
			Pickup:            firstNonEmpty(c.Pickup, req.Pickup),
			Dropoff:           firstNonEmpty(c.Dropoff, req.Dropoff),
			PickupTime:        firstNonEmpty(c.PickupTime, req.PickupTime),
			EstimatedDuration: c.EstimatedDuration,
			Price:             c.Price.String(),
			Currency:          c.Currency,
		}
		card.Booking = travel.CabBooking{Pickup: card.Pickup, Dropoff: card.Dropoff, PickupTime: card.PickupTime}
		out = append(out, card)
	}
	return out
}

// BookingRows maps bookings for display. now stands in for a missing creation time.
func BookingRows(bookings []travel.Booking, now time.Time) []BookingRow {
	out := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		row := BookingRow{
			ID:       b.ID.String(),
			Type:     b.Type,
			Details:  b.Details,
			BookedOn: uiutil.FormatFriendlyDate(b.BookedOn(now)),
		}
		if kind, ok := b.Kind(); ok {
			row.Kind = string(kind)
		}
		out = append(out, row)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
