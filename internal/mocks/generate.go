// Package mocks provides gomock implementations of the ports for tests.
//
// The mocks are generated with go.uber.org/mock (mockgen) and committed so
// tests build without running the generator.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockTravelAPI(ctrl)
//	api.EXPECT().SearchFlights(gomock.Any(), req).Return(flights, nil)
package mocks

// Upstream travel API client:
// Login, Register, Search/Book for flights, hotels and cabs, profile and bookings, Ping
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=travel_api_mock.go github.com/target/travelgo/internal/ports TravelAPI

// Session persistence: Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/target/travelgo/internal/ports SessionStore

// Search result cache: Get, Set
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=search_cache_mock.go github.com/target/travelgo/internal/ports SearchCache
