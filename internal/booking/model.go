// Package booking turns itineraries into bookable line items and confirms a user's picks.
package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type is the kind of bookable item.
type Type string

const (
	Activity      Type = "activity"
	Accommodation Type = "accommodation"
)

// Label returns a human-readable label for the type.
func (t Type) Label() string {
	switch t {
	case Activity:
		return "Activity"
	case Accommodation:
		return "Accommodation"
	default:
		return string(t)
	}
}

// Option is one bookable line item taken from an itinerary.
type Option struct {
	Type        Type     `json:"type"`
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating"`
	Price       float64  `json:"price"`
	Available   bool     `json:"availability"`
	ItineraryID string   `json:"itinerary_id"`
}

// RatingValue returns the numeric rating, treating a missing rating as 0.
func (o Option) RatingValue() float64 {
	if o.Rating == nil {
		return 0
	}
	return *o.Rating
}

// RatingLabel returns the rating for display, or "N/A" when unrated.
func (o Option) RatingLabel() string {
	if o.Rating == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *o.Rating)
}

// Confirmation is the result of a successful selection. It is not persisted.
type Confirmation struct {
	Reference   string    `json:"reference"`
	Bookings    []Option  `json:"bookings"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// NewConfirmation wraps confirmed options with a fresh reference.
func NewConfirmation(bookings []Option) *Confirmation {
	return &Confirmation{
		Reference:   uuid.NewString(),
		Bookings:    bookings,
		ConfirmedAt: time.Now().UTC(),
	}
}
