package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/trip-planner/internal/booking"
	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/db"
	"github.com/evcraddock/trip-planner/internal/itinerary"
	"github.com/evcraddock/trip-planner/internal/planner"
)

func testStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore(map[string]catalog.Destination{
		"bahrain": {
			Activities:     []catalog.Activity{{Name: "Museum", Cost: 2}, {Name: "Spa", Cost: 50}},
			Accommodations: []catalog.Accommodation{{Name: "Inn", PricePerNight: 45}},
			Food:           []catalog.Food{{Name: "Shawarma", AvgCost: 5}},
		},
		"sparse": {
			Activities: []catalog.Activity{{Name: "Walk"}},
		},
	})
	require.NoError(t, err)
	return store
}

// testAPIServer creates a server backed by a temp database with rate limiting off.
func testAPIServer(t *testing.T) *Server {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open db")
	t.Cleanup(func() {
		assert.NoError(t, d.Close(), "close db")
	})

	svc := planner.NewService(testStore(t), itinerary.NewRand(17), nil)
	return NewServer(svc, itinerary.NewRepository(d), nil, Options{AllowedOrigins: []string{"*"}})
}

func apiRequest(t *testing.T, srv http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	reqBody := &bytes.Buffer{}
	if body != nil {
		require.NoError(t, json.NewEncoder(reqBody).Encode(body))
	}

	r := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "body: %s", w.Body.String())
}

func TestHealth(t *testing.T) {
	srv := testAPIServer(t)

	w := apiRequest(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIListDestinations(t *testing.T) {
	srv := testAPIServer(t)

	w := apiRequest(t, srv, http.MethodGet, "/api/destinations", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []destinationSummary
	decode(t, w, &got)
	require.Len(t, got, 2)
	assert.Equal(t, destinationSummary{Name: "bahrain", Activities: 2, Accommodations: 1, Food: 1}, got[0])
	assert.Equal(t, "sparse", got[1].Name)
}

func TestAPIGetDestination(t *testing.T) {
	srv := testAPIServer(t)

	w := apiRequest(t, srv, http.MethodGet, "/api/destinations/Bahrain", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Name       string             `json:"name"`
		Activities []catalog.Activity `json:"activities"`
	}
	decode(t, w, &got)
	assert.Equal(t, "Bahrain", got.Name)
	assert.Len(t, got.Activities, 2)

	w = apiRequest(t, srv, http.MethodGet, "/api/destinations/atlantis", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIPlan(t *testing.T) {
	srv := testAPIServer(t)

	w := apiRequest(t, srv, http.MethodPost, "/api/itineraries",
		planner.Request{Destination: "bahrain", Budget: 90, Days: 3, Count: 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		planner.Plan
		SavedIDs []int64 `json:"saved_ids"`
	}
	decode(t, w, &got)

	require.Len(t, got.Itineraries, 2)
	assert.Equal(t, "itinerary_1", got.Itineraries[0].ID)
	assert.Len(t, got.Options, 2*3*2)
	assert.Empty(t, got.SavedIDs)

	for _, o := range got.Options {
		// daily budget 30 -> activity threshold 10 excludes the spa
		assert.NotEqual(t, "Spa", o.Name)
	}
}

func TestAPIPlanAndSave(t *testing.T) {
	srv := testAPIServer(t)

	w := apiRequest(t, srv, http.MethodPost, "/api/itineraries?save=true&note=honeymoon",
		planner.Request{Destination: "bahrain", Single: true, Days: 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		SavedIDs []int64 `json:"saved_ids"`
	}
	decode(t, w, &got)
	require.Len(t, got.SavedIDs, 1)

	w = apiRequest(t, srv, http.MethodGet, "/api/itineraries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []itinerary.Saved
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, got.SavedIDs[0], list[0].ID)
	assert.Equal(t, "honeymoon", list[0].Note)

	path := fmt.Sprintf("/api/itineraries/%d", got.SavedIDs[0])
	w = apiRequest(t, srv, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = apiRequest(t, srv, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = apiRequest(t, srv, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = apiRequest(t, srv, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIPlanErrors(t *testing.T) {
	srv := testAPIServer(t)

	tests := []struct {
		name string
		body interface{}
		want int
	}{
		{"unknown destination", planner.Request{Destination: "atlantis"}, http.StatusNotFound},
		{"insufficient data", planner.Request{Destination: "sparse"}, http.StatusUnprocessableEntity},
		{"negative days", planner.Request{Destination: "bahrain", Days: -1}, http.StatusBadRequest},
		{"too many days", planner.Request{Destination: "bahrain", Days: 1000000000}, http.StatusBadRequest},
		{"too many itineraries", planner.Request{Destination: "bahrain", Count: itinerary.MaxCount + 1}, http.StatusBadRequest},
		{"negative budget", planner.Request{Destination: "bahrain", Budget: -3}, http.StatusBadRequest},
		{"missing destination", planner.Request{}, http.StatusBadRequest},
		{"bad json", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := apiRequest(t, srv, http.MethodPost, "/api/itineraries", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			var resp map[string]string
			decode(t, w, &resp)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestAPIPlanBodyTooLarge(t *testing.T) {
	srv := testAPIServer(t)

	body := map[string]string{"destination": "bahrain", "padding": strings.Repeat("x", maxBodyBytes)}
	w := apiRequest(t, srv, http.MethodPost, "/api/itineraries", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
}

func TestAPIConfirm(t *testing.T) {
	srv := testAPIServer(t)

	options := []booking.Option{
		{Type: booking.Accommodation, Name: "one", Available: true},
		{Type: booking.Activity, Name: "two", Available: false},
		{Type: booking.Activity, Name: "three", Available: true},
		{Type: booking.Activity, Name: "four", Available: true},
		{Type: booking.Accommodation, Name: "five", Available: true},
	}

	body := map[string]interface{}{"options": options, "selection": []int{1, 6, 3}}
	w := apiRequest(t, srv, http.MethodPost, "/api/bookings/confirm", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var c booking.Confirmation
	decode(t, w, &c)
	assert.NotEmpty(t, c.Reference)
	require.Len(t, c.Bookings, 2)
	assert.Equal(t, "one", c.Bookings[0].Name)
	assert.Equal(t, "three", c.Bookings[1].Name)

	body = map[string]interface{}{"options": options, "selection": []int{2, 9}}
	w = apiRequest(t, srv, http.MethodPost, "/api/bookings/confirm", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPISavedInvalidID(t *testing.T) {
	srv := testAPIServer(t)

	w := apiRequest(t, srv, http.MethodGet, "/api/itineraries/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPISavedUnavailableWithoutRepository(t *testing.T) {
	svc := planner.NewService(testStore(t), itinerary.NewRand(1), nil)
	srv := NewServer(svc, nil, nil, Options{})

	w := apiRequest(t, srv, http.MethodGet, "/api/itineraries", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = apiRequest(t, srv, http.MethodPost, "/api/itineraries?save=true", planner.Request{Destination: "bahrain"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAPIMethodNotAllowed(t *testing.T) {
	srv := testAPIServer(t)

	w := apiRequest(t, srv, http.MethodPut, "/api/itineraries", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := testAPIServer(t)

	r := httptest.NewRequest(http.MethodOptions, "/api/itineraries", nil)
	r.Header.Set("Origin", "https://planner.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, r)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	svc := planner.NewService(testStore(t), itinerary.NewRand(1), nil)
	srv := NewServer(svc, nil, nil, Options{RequestsPerMinute: 2})

	for i := 0; i < 2; i++ {
		w := apiRequest(t, srv, http.MethodGet, "/api/destinations", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := apiRequest(t, srv, http.MethodGet, "/api/destinations", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
