package travel

// Flight is one flight offer returned by a flight search.
type Flight struct {
	FlightNumber  Text   `json:"flightNumber"`
	Airline       string `json:"airline,omitempty"`
	From          Text   `json:"from"`
	To            Text   `json:"to"`
	DepartureTime Text   `json:"departureTime"`
	ArrivalTime   Text   `json:"arrivalTime"`
	Price         Amount `json:"price"`
	Currency      string `json:"currency,omitempty"`
}

// AirlineOrDefault returns the airline name, or "Airline" when the offer has none.
func (f Flight) AirlineOrDefault() string {
	if f.Airline == "" {
		return "Airline"
	}
	return f.Airline
}

// Hotel is one hotel offer returned by a hotel search.
type Hotel struct {
	HotelID       Text     `json:"hotelId"`
	Name          string   `json:"name"`
	City          string   `json:"city,omitempty"`
	CheckIn       string   `json:"checkIn,omitempty"`
	CheckOut      string   `json:"checkOut,omitempty"`
	PricePerNight Amount   `json:"pricePerNight"`
	Currency      string   `json:"currency,omitempty"`
	Rating        Amount   `json:"rating"`
	Amenities     []string `json:"amenities,omitempty"`
}

// TopAmenities returns at most n amenities for compact cards.
func (h Hotel) TopAmenities(n int) []string {
	if n < 0 || len(h.Amenities) <= n {
		return h.Amenities
	}
	return h.Amenities[:n]
}

// Cab is one ride offer returned by a cab search.
type Cab struct {
	ProviderID        Text   `json:"providerId"`
	Provider          string `json:"provider"`
	VehicleType       string `json:"vehicleType,omitempty"`
	Pickup            string `json:"pickup"`
	Dropoff           string `json:"dropoff"`
	PickupTime        string `json:"pickupTime"`
	EstimatedDuration string `json:"estimatedDuration,omitempty"`
	Price             Amount `json:"price"`
	Currency          string `json:"currency,omitempty"`
}

// FlightBooking reserves a flight offer.
type FlightBooking struct {
	FlightNumber  string `json:"flightNumber"`
	From          string `json:"from"`
	To            string `json:"to"`
	DepartureDate string `json:"departureDate"`
}

// HotelBooking reserves a hotel stay.
type HotelBooking struct {
	Hotel    string `json:"hotel"`
	City     string `json:"city"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
}

// CabBooking reserves a ride.
type CabBooking struct {
	Pickup     string `json:"pickup"`
	Dropoff    string `json:"dropoff"`
	PickupTime string `json:"pickupTime"`
}
