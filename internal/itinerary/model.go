// Package itinerary builds budget-aware day-by-day travel plans from a catalog.
package itinerary

import (
	"github.com/evcraddock/trip-planner/internal/catalog"
)

// DayPlan is one day's selections.
type DayPlan struct {
	Day           int                   `json:"day"`
	Activities    []catalog.Activity    `json:"activities"`
	Accommodation catalog.Accommodation `json:"accommodation"`
	Food          []catalog.Food        `json:"food"`
}

// Itinerary is a day-by-day plan for one destination.
type Itinerary struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	Budget      float64   `json:"budget,omitempty"`
	NumDays     int       `json:"num_days"`
	Days        []DayPlan `json:"days"`
}

// Batch is a set of itineraries generated together, in generation order.
type Batch struct {
	Itineraries []*Itinerary `json:"itineraries"`
}

// Get returns the itinerary with the given ID, or nil.
func (b *Batch) Get(id string) *Itinerary {
	for _, it := range b.Itineraries {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Len returns the number of itineraries in the batch.
func (b *Batch) Len() int {
	return len(b.Itineraries)
}
