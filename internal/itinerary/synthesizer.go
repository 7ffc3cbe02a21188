package itinerary

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/evcraddock/trip-planner/internal/catalog"
)

var (
	// ErrInsufficientData means the destination lacks activities, accommodations or food.
	ErrInsufficientData = errors.New("insufficient data for a surprise itinerary")
	ErrInvalidDays      = errors.New("number of days must be between 1 and 365")
	ErrInvalidBudget    = errors.New("budget must not be negative")
	ErrInvalidCount     = errors.New("itinerary count must be between 1 and 50")
)

// Share of the daily budget each category may consume.
const (
	activityShare      = 3
	accommodationShare = 2
	foodShare          = 4

	secondMealChance = 0.7
)

// Upper bounds on a single request.
const (
	MaxDays  = 365
	MaxCount = 50
)

// Catalog looks up destinations by name.
type Catalog interface {
	Lookup(name string) (*catalog.Destination, error)
}

// Synthesizer generates itineraries by affordability-filtered random selection.
type Synthesizer struct {
	catalog Catalog
	rand    Rand
	log     *zap.Logger
}

// NewSynthesizer creates a synthesizer. A nil rand uses GlobalRand and a nil
// logger discards output.
func NewSynthesizer(c Catalog, r Rand, log *zap.Logger) *Synthesizer {
	if r == nil {
		r = GlobalRand()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Synthesizer{catalog: c, rand: r, log: log}
}

// Generate builds one itinerary of numDays days. A zero budget disables
// affordability filtering. An empty id is replaced by "itinerary_NNN", which
// is random and may repeat across calls.
func (s *Synthesizer) Generate(destination string, budget float64, numDays int, id string) (*Itinerary, error) {
	if numDays < 1 || numDays > MaxDays {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidDays, numDays)
	}
	if budget < 0 {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidBudget, budget)
	}

	d, err := s.catalog.Lookup(destination)
	if err != nil {
		return nil, err
	}
	if !d.Complete() {
		return nil, fmt.Errorf("%w: %s", ErrInsufficientData, destination)
	}

	if id == "" {
		id = fmt.Sprintf("itinerary_%d", 100+s.rand.IntN(900))
	}

	limited := budget != 0
	var daily float64
	if limited {
		daily = budget / float64(numDays)
	}

	it := &Itinerary{
		ID:          id,
		Destination: catalog.Normalize(destination),
		Budget:      budget,
		NumDays:     numDays,
	}

	for day := 1; day <= numDays; day++ {
		plan := DayPlan{Day: day}

		plan.Activities = append(plan.Activities,
			pick(s.rand, d.Activities, limited, daily/activityShare, func(a catalog.Activity) float64 { return a.Cost }))

		plan.Accommodation = pick(s.rand, d.Accommodations, limited, daily/accommodationShare,
			func(a catalog.Accommodation) float64 { return a.PricePerNight })

		plan.Food = append(plan.Food,
			pick(s.rand, d.Food, limited, daily/foodShare, func(f catalog.Food) float64 { return f.AvgCost }))
		if s.rand.Float64() < secondMealChance {
			plan.Food = append(plan.Food, d.Food[s.rand.IntN(len(d.Food))])
		}

		it.Days = append(it.Days, plan)
	}

	s.log.Debug("generated itinerary",
		zap.String("id", it.ID),
		zap.String("destination", it.Destination),
		zap.Float64("budget", budget),
		zap.Int("days", numDays),
	)

	return it, nil
}

// GenerateBatch builds count independent itineraries with IDs itinerary_1..itinerary_count.
// Itineraries may repeat each other.
func (s *Synthesizer) GenerateBatch(destination string, count int, budget float64, numDays int) (*Batch, error) {
	if count < 1 || count > MaxCount {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}

	b := &Batch{}
	for i := 0; i < count; i++ {
		it, err := s.Generate(destination, budget, numDays, fmt.Sprintf("itinerary_%d", i+1))
		if err != nil {
			return nil, err
		}
		b.Itineraries = append(b.Itineraries, it)
	}

	return b, nil
}

// pick chooses uniformly among items whose cost is within limit, falling back
// to all items when filtering is off or nothing qualifies. items must be non-empty.
func pick[T any](r Rand, items []T, limited bool, limit float64, cost func(T) float64) T {
	candidates := items
	if limited {
		var affordable []T
		for _, item := range items {
			if cost(item) <= limit {
				affordable = append(affordable, item)
			}
		}
		if len(affordable) > 0 {
			candidates = affordable
		}
	}
	return candidates[r.IntN(len(candidates))]
}
