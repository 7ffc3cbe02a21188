// Package planner ties the catalog, synthesizer and booking steps into one request.
package planner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/evcraddock/trip-planner/internal/booking"
	"github.com/evcraddock/trip-planner/internal/catalog"
	"github.com/evcraddock/trip-planner/internal/itinerary"
)

// Defaults applied when a request leaves a field at zero.
const (
	DefaultDays  = 3
	DefaultCount = 3
)

// Request describes what to plan. A zero Budget means no budget.
type Request struct {
	Destination string  `json:"destination"`
	Budget      float64 `json:"budget"`
	Days        int     `json:"days"`
	Count       int     `json:"count"`
	// Single generates one itinerary with a random ID instead of a numbered batch.
	Single bool `json:"single"`
}

// Plan is the outcome of a request: the itineraries and their ranked booking options.
type Plan struct {
	Itineraries []*itinerary.Itinerary `json:"itineraries"`
	Options     []booking.Option       `json:"options"`
}

// Service plans trips against a catalog.
type Service struct {
	catalog     *catalog.Store
	synthesizer *itinerary.Synthesizer
	aggregator  *booking.Aggregator
	log         *zap.Logger
}

// NewService creates a planner. A nil rand uses itinerary.GlobalRand.
func NewService(c *catalog.Store, r itinerary.Rand, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalog:     c,
		synthesizer: itinerary.NewSynthesizer(c, r, log),
		aggregator:  booking.NewAggregator(r),
		log:         log,
	}
}

// Catalog returns the catalog the service plans against.
func (s *Service) Catalog() *catalog.Store {
	return s.catalog
}

// Plan generates itineraries for req and ranks their booking options.
func (s *Service) Plan(req Request) (*Plan, error) {
	if req.Days == 0 {
		req.Days = DefaultDays
	}
	if req.Count == 0 {
		req.Count = DefaultCount
	}

	if _, err := s.catalog.Lookup(req.Destination); err != nil {
		return nil, err
	}

	var (
		its     []*itinerary.Itinerary
		options []booking.Option
	)
	if req.Single {
		it, err := s.synthesizer.Generate(req.Destination, req.Budget, req.Days, "")
		if err != nil {
			return nil, fmt.Errorf("generating itinerary: %w", err)
		}
		its = []*itinerary.Itinerary{it}
		options = s.aggregator.Options(it)
	} else {
		b, err := s.synthesizer.GenerateBatch(req.Destination, req.Count, req.Budget, req.Days)
		if err != nil {
			return nil, fmt.Errorf("generating itineraries: %w", err)
		}
		its = b.Itineraries
		options = s.aggregator.OptionsForBatch(b)
	}

	s.log.Info("planned trip",
		zap.String("destination", req.Destination),
		zap.Float64("budget", req.Budget),
		zap.Int("days", req.Days),
		zap.Int("itineraries", len(its)),
		zap.Int("options", len(options)),
	)

	return &Plan{Itineraries: its, Options: booking.Rank(options)}, nil
}

// Confirm books the selected 1-based indices of options. It returns
// booking.ErrNothingConfirmed when no selected option is available.
func (s *Service) Confirm(options []booking.Option, selection []int) (*booking.Confirmation, error) {
	confirmed := booking.Confirm(options, selection)
	if len(confirmed) == 0 {
		return nil, booking.ErrNothingConfirmed
	}

	c := booking.NewConfirmation(confirmed)
	s.log.Info("confirmed bookings",
		zap.String("reference", c.Reference),
		zap.Int("count", len(confirmed)),
	)
	return c, nil
}
