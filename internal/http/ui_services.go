package httpx

import (
	"maps"
	"net/http"

	"github.com/target/travelgo/internal/domain/travel"
	apperrors "github.com/target/travelgo/internal/errors"
	"github.com/target/travelgo/internal/http/ui/viewmodel"
)

// Template data keys for search forms and results.
const (
	keyFlightForm    = "FlightForm"
	keyHotelForm     = "HotelForm"
	keyCabForm       = "CabForm"
	keyFlightResults = "FlightResults"
	keyHotelResults  = "HotelResults"
	keyCabResults    = "CabResults"
	keySearched      = "Searched"
)

// serviceMeta returns page metadata for a service's search page.
func serviceMeta(kind travel.Kind) PageMeta {
	return pageMeta(servicePage(kind), kind.PluralLabel())
}

// resultsTemplate names the fragment swapped into a service's results container.
func resultsTemplate(kind travel.Kind) string {
	switch kind {
	case travel.KindHotel:
		return tmplHotelResults
	case travel.KindCab:
		return tmplCabResults
	default:
		return tmplFlightResults
	}
}

// Home renders the landing hero with tabbed search forms. GET /.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	tab := travel.KindFlight
	if k, ok := travel.ParseKind(r.URL.Query().Get("tab")); ok {
		tab = k
	}
	b := h.pageData(r, pageMeta(PageHome, "")).With("Tab", string(tab)).With("Kinds", travel.Kinds)
	data := b.Build()
	maps.Copy(data, defaultSearchForms())
	h.renderPage(w, r, data)
}

// FlightsPage renders the flight search form. GET /flights.
func (h *UIHandlers) FlightsPage(w http.ResponseWriter, r *http.Request) {
	h.servicePage(w, r, travel.KindFlight)
}

// HotelsPage renders the hotel search form. GET /hotels.
func (h *UIHandlers) HotelsPage(w http.ResponseWriter, r *http.Request) {
	h.servicePage(w, r, travel.KindHotel)
}

// CabsPage renders the cab search form. GET /cabs.
func (h *UIHandlers) CabsPage(w http.ResponseWriter, r *http.Request) {
	h.servicePage(w, r, travel.KindCab)
}

func (h *UIHandlers) servicePage(w http.ResponseWriter, r *http.Request, kind travel.Kind) {
	data := h.pageData(r, serviceMeta(kind)).Build()
	maps.Copy(data, defaultSearchForms())
	h.renderPage(w, r, data)
}

// SearchFlights runs a flight search. POST /flights/search.
func (h *UIHandlers) SearchFlights(w http.ResponseWriter, r *http.Request) {
	req, err := parseFlightSearch(r)
	var cards []viewmodel.FlightCard
	if err == nil {
		var flights []travel.Flight
		if flights, err = h.Travel.SearchFlights(r.Context(), req); err == nil {
			cards = viewmodel.FlightCards(flights, req.Normalize())
		}
	}
	h.renderSearch(w, r, searchResult{
		Kind: travel.KindFlight, FormKey: keyFlightForm, Form: req,
		ResultsKey: keyFlightResults, Results: cards, Err: err,
	})
}

// SearchHotels runs a hotel search. POST /hotels/search.
func (h *UIHandlers) SearchHotels(w http.ResponseWriter, r *http.Request) {
	req, err := parseHotelSearch(r)
	var cards []viewmodel.HotelCard
	if err == nil {
		var hotels []travel.Hotel
		if hotels, err = h.Travel.SearchHotels(r.Context(), req); err == nil {
			cards = viewmodel.HotelCards(hotels, req.Normalize())
		}
	}
	h.renderSearch(w, r, searchResult{
		Kind: travel.KindHotel, FormKey: keyHotelForm, Form: req,
		ResultsKey: keyHotelResults, Results: cards, Err: err,
	})
}

// SearchCabs runs a cab search. POST /cabs/search.
func (h *UIHandlers) SearchCabs(w http.ResponseWriter, r *http.Request) {
	req := parseCabSearch(r)
	var cards []viewmodel.CabCard
	cabs, err := h.Travel.SearchCabs(r.Context(), req)
	if err == nil {
		cards = viewmodel.CabCards(cabs, req.Normalize())
	}
	h.renderSearch(w, r, searchResult{
		Kind: travel.KindCab, FormKey: keyCabForm, Form: req,
		ResultsKey: keyCabResults, Results: cards, Err: err,
	})
}

type searchResult struct {
	Kind       travel.Kind
	FormKey    string
	Form       any
	ResultsKey string
	Results    any
	Err        error
}

// renderSearch swaps the results fragment for HTMX, or re-renders the whole
// service page with the submitted form for plain form posts.
func (h *UIHandlers) renderSearch(w http.ResponseWriter, r *http.Request, res searchResult) {
	if apperrors.IsUnauthorized(res.Err) {
		h.handleUnauthorized(w, r)
		return
	}

	extra := defaultSearchForms()
	extra[res.FormKey] = res.Form
	extra[keySearched] = true

	renderer := h.renderPage
	if IsHTMX(r) {
		name := resultsTemplate(res.Kind)
		renderer = func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderFragment(w, r, name, data)
		}
	}

	if res.Err != nil {
		h.logger().DebugContext(r.Context(), "search failed",
			"kind", string(res.Kind), "code", apperrors.GetCode(res.Err), "error", res.Err)
		RenderError(ErrorOpts{
			W: w, R: r, Err: res.Err,
			Renderer: renderer,
			Now:      h.now(),
			PageMeta: serviceMeta(res.Kind),
			Data:     extra,
		})
		return
	}

	extra[res.ResultsKey] = res.Results
	data := h.pageData(r, serviceMeta(res.Kind)).Build()
	maps.Copy(data, extra)
	renderer(w, r, data)
}

// BookFlight books a flight from a result card. POST /flights/book.
func (h *UIHandlers) BookFlight(w http.ResponseWriter, r *http.Request) {
	b, err := h.Travel.BookFlight(r.Context(), sessionToken(r.Context()), parseFlightBooking(r))
	h.renderBooking(w, r, travel.KindFlight, b, err)
}

// BookHotel books a hotel from a result card. POST /hotels/book.
func (h *UIHandlers) BookHotel(w http.ResponseWriter, r *http.Request) {
	b, err := h.Travel.BookHotel(r.Context(), sessionToken(r.Context()), parseHotelBooking(r))
	h.renderBooking(w, r, travel.KindHotel, b, err)
}

// BookCab books a cab from a result card. POST /cabs/book.
func (h *UIHandlers) BookCab(w http.ResponseWriter, r *http.Request) {
	b, err := h.Travel.BookCab(r.Context(), sessionToken(r.Context()), parseCabBooking(r))
	h.renderBooking(w, r, travel.KindCab, b, err)
}

// renderBooking reports a booking outcome: an alert fragment (plus a toast on
// success) for HTMX, or the service page with a banner otherwise.
func (h *UIHandlers) renderBooking(w http.ResponseWriter, r *http.Request, kind travel.Kind, b travel.Booking, err error) {
	if apperrors.IsUnauthorized(err) {
		h.handleUnauthorized(w, r)
		return
	}

	renderer := h.renderPage
	if IsHTMX(r) {
		renderer = func(w http.ResponseWriter, r *http.Request, data map[string]any) {
			h.renderFragment(w, r, tmplFormAlert, data)
		}
	}

	if err != nil {
		h.logger().InfoContext(r.Context(), "booking failed",
			"kind", string(kind), "code", apperrors.GetCode(err))
		RenderError(ErrorOpts{
			W: w, R: r, Err: err,
			Renderer: renderer,
			Now:      h.now(),
			PageMeta: serviceMeta(kind),
			Data:     defaultSearchForms(),
		})
		return
	}

	h.logger().InfoContext(r.Context(), "booking created", "kind", string(kind), "booking_id", b.ID.String())
	msg := kind.BookedMessage()
	if IsHTMX(r) {
		triggerToast(w, msg, "success")
	}
	data := h.pageData(r, serviceMeta(kind)).WithSuccess(msg).With("Booking", b).Build()
	maps.Copy(data, defaultSearchForms())
	renderer(w, r, data)
}
