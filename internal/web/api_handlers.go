package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/evcraddock/trip-planner/internal/booking"
	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/itinerary"
	"github.com/evcraddock/trip-planner/internal/planner"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// maxBodyBytes caps request bodies. A confirm request carries the option list back.
const maxBodyBytes = 1 << 20

// decodeBody reads a size-limited JSON body into v, writing the error response
// itself when it fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apiError(w, "request body too large", http.StatusRequestEntityTooLarge)
		return false
	}
	apiError(w, "invalid JSON body", http.StatusBadRequest)
	return false
}

// planStatus maps planning errors to HTTP status codes.
func planStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, itinerary.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, itinerary.ErrInvalidDays),
		errors.Is(err, itinerary.ErrInvalidBudget),
		errors.Is(err, itinerary.ErrInvalidCount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type destinationSummary struct {
	Name           string `json:"name"`
	Activities     int    `json:"activities"`
	Accommodations int    `json:"accommodations"`
	Food           int    `json:"food"`
}

// apiListDestinations returns every destination with item counts.
func (s *Server) apiListDestinations(w http.ResponseWriter, r *http.Request) {
	store := s.planner.Catalog()
	summaries := make([]destinationSummary, 0)
	for _, name := range store.Destinations() {
		d, err := store.Lookup(name)
		if err != nil {
			apiError(w, fmt.Sprintf("loading %s: %v", name, err), http.StatusInternalServerError)
			return
		}
		summaries = append(summaries, destinationSummary{
			Name:           name,
			Activities:     len(d.Activities),
			Accommodations: len(d.Accommodations),
			Food:           len(d.Food),
		})
	}
	apiJSON(w, summaries, http.StatusOK)
}

// apiGetDestination returns the full catalog entry for one destination.
func (s *Server) apiGetDestination(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	d, err := s.planner.Catalog().Lookup(name)
	if err != nil {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}

	type response struct {
		Name string `json:"name"`
		*catalog.Destination
	}
	apiJSON(w, response{Name: name, Destination: d}, http.StatusOK)
}

// apiPlan generates itineraries and ranked booking options.
// With ?save=true every generated itinerary is also stored, with ?note= attached.
func (s *Server) apiPlan(w http.ResponseWriter, r *http.Request) {
	var req planner.Request
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Destination == "" {
		apiError(w, "destination is required", http.StatusBadRequest)
		return
	}

	save := r.URL.Query().Get("save") == "true"
	if save && s.saved == nil {
		apiError(w, "saving itineraries is not available", http.StatusServiceUnavailable)
		return
	}

	plan, err := s.planner.Plan(req)
	if err != nil {
		apiError(w, err.Error(), planStatus(err))
		return
	}

	type response struct {
		*planner.Plan
		SavedIDs []int64 `json:"saved_ids,omitempty"`
	}
	resp := response{Plan: plan}

	if save {
		note := r.URL.Query().Get("note")
		for _, it := range plan.Itineraries {
			saved, err := s.saved.Save(it, note)
			if err != nil {
				s.log.Error("saving itinerary", zap.String("id", it.ID), zap.Error(err))
				apiError(w, fmt.Sprintf("saving itinerary: %v", err), http.StatusInternalServerError)
				return
			}
			resp.SavedIDs = append(resp.SavedIDs, saved.ID)
		}
	}

	apiJSON(w, resp, http.StatusOK)
}

// apiConfirm confirms a selection against the options the client displayed.
func (s *Server) apiConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Options   []booking.Option `json:"options"`
		Selection []int            `json:"selection"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := s.planner.Confirm(req.Options, req.Selection)
	if errors.Is(err, booking.ErrNothingConfirmed) {
		apiError(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	apiJSON(w, c, http.StatusCreated)
}

// apiListSaved returns saved itineraries, newest first.
func (s *Server) apiListSaved(w http.ResponseWriter, r *http.Request) {
	if s.saved == nil {
		apiError(w, "saved itineraries are not available", http.StatusServiceUnavailable)
		return
	}

	saved, err := s.saved.List()
	if err != nil {
		apiError(w, fmt.Sprintf("listing itineraries: %v", err), http.StatusInternalServerError)
		return
	}
	if saved == nil {
		saved = make([]*itinerary.Saved, 0)
	}
	apiJSON(w, saved, http.StatusOK)
}

// apiGetSaved returns one saved itinerary.
func (s *Server) apiGetSaved(w http.ResponseWriter, r *http.Request) {
	id, ok := s.savedID(w, r)
	if !ok {
		return
	}

	saved, err := s.saved.GetByID(id)
	if errors.Is(err, itinerary.ErrSavedNotFound) {
		apiError(w, "itinerary not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("loading itinerary: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, saved, http.StatusOK)
}

// apiDeleteSaved removes a saved itinerary.
func (s *Server) apiDeleteSaved(w http.ResponseWriter, r *http.Request) {
	id, ok := s.savedID(w, r)
	if !ok {
		return
	}

	err := s.saved.Delete(id)
	if errors.Is(err, itinerary.ErrSavedNotFound) {
		apiError(w, "itinerary not found", http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("deleting itinerary: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "removed": true}, http.StatusOK)
}

// savedID parses the {id} path value, writing an error response when it can't.
func (s *Server) savedID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if s.saved == nil {
		apiError(w, "saved itineraries are not available", http.StatusServiceUnavailable)
		return 0, false
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		apiError(w, "invalid itinerary ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
