package booking

import (
	"github.com/evcraddock/trip-planner/internal/itinerary"
)

// Availability is simulated: an item is unavailable when a draw from
// [0, n) lands on zero.
const (
	accommodationOdds = 20
	activityOdds      = 30
)

// Aggregator flattens itineraries into booking options.
type Aggregator struct {
	rand itinerary.Rand
}

// NewAggregator creates an aggregator. A nil rand uses itinerary.GlobalRand.
func NewAggregator(r itinerary.Rand) *Aggregator {
	if r == nil {
		r = itinerary.GlobalRand()
	}
	return &Aggregator{rand: r}
}

// Options returns one option per accommodation and activity, in day order with
// the accommodation first. Food is never bookable.
func (a *Aggregator) Options(it *itinerary.Itinerary) []Option {
	options := make([]Option, 0, len(it.Days)*2)

	for _, day := range it.Days {
		stay := day.Accommodation
		options = append(options, Option{
			Type:        Accommodation,
			Name:        stay.Name,
			Rating:      stay.Rating,
			Price:       stay.PricePerNight,
			Available:   a.available(accommodationOdds),
			ItineraryID: it.ID,
		})

		for _, act := range day.Activities {
			options = append(options, Option{
				Type:        Activity,
				Name:        act.Name,
				Rating:      act.Rating,
				Price:       act.Cost,
				Available:   a.available(activityOdds),
				ItineraryID: it.ID,
			})
		}
	}

	return options
}

// OptionsForBatch concatenates the options of every itinerary in batch order.
func (a *Aggregator) OptionsForBatch(b *itinerary.Batch) []Option {
	var options []Option
	for _, it := range b.Itineraries {
		options = append(options, a.Options(it)...)
	}
	return options
}

func (a *Aggregator) available(odds int) bool {
	return a.rand.IntN(odds) != 0
}
