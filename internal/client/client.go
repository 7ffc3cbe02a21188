// Package client provides an HTTP client for the trip-planner JSON API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evcraddock/trip-planner/internal/booking"
	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/itinerary"
	"github.com/evcraddock/trip-planner/internal/planner"
)

// Client talks to a running `tp serve`.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// DestinationSummary is one entry of GET /api/destinations.
type DestinationSummary struct {
	Name           string `json:"name"`
	Activities     int    `json:"activities"`
	Accommodations int    `json:"accommodations"`
	Food           int    `json:"food"`
}

// PlanResponse is the response from POST /api/itineraries.
type PlanResponse struct {
	planner.Plan
	SavedIDs []int64 `json:"saved_ids"`
}

// ListDestinations returns every destination with item counts.
func (c *Client) ListDestinations() ([]DestinationSummary, error) {
	var ds []DestinationSummary
	if err := c.get("/api/destinations", &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// GetDestination returns the catalog entry for one destination.
func (c *Client) GetDestination(name string) (*catalog.Destination, error) {
	var d catalog.Destination
	if err := c.get("/api/destinations/"+url.PathEscape(name), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Plan generates itineraries on the server. With save set they are also
// stored under note.
func (c *Client) Plan(req planner.Request, save bool, note string) (*PlanResponse, error) {
	path := "/api/itineraries"
	if save {
		q := url.Values{"save": {"true"}}
		if note != "" {
			q.Set("note", note)
		}
		path += "?" + q.Encode()
	}

	var resp PlanResponse
	if err := c.post(path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Confirm books the 1-based selection of options.
func (c *Client) Confirm(options []booking.Option, selection []int) (*booking.Confirmation, error) {
	body := map[string]interface{}{"options": options, "selection": selection}
	var conf booking.Confirmation
	if err := c.post("/api/bookings/confirm", body, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ListSaved returns saved itineraries, newest first.
func (c *Client) ListSaved() ([]*itinerary.Saved, error) {
	var saved []*itinerary.Saved
	if err := c.get("/api/itineraries", &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// GetSaved returns one saved itinerary.
func (c *Client) GetSaved(id int64) (*itinerary.Saved, error) {
	var s itinerary.Saved
	if err := c.get(fmt.Sprintf("/api/itineraries/%d", id), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSaved removes a saved itinerary.
func (c *Client) DeleteSaved(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/itineraries/%d", id))
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and turns error responses into errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &StatusError{Code: resp.StatusCode, Message: errResp.Error}
		}
		return &StatusError{Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// StatusError is returned for 4xx and 5xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}
