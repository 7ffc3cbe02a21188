package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a destination is not in the catalog.
var ErrNotFound = errors.New("destination not found")

// Store is an immutable, in-memory catalog keyed by lower-cased destination name.
// It is safe for concurrent readers.
type Store struct {
	destinations map[string]*Destination
}

// NewStore validates the given destinations and returns a store over a copy of them.
func NewStore(destinations map[string]Destination) (*Store, error) {
	s := &Store{destinations: make(map[string]*Destination, len(destinations))}

	for name, d := range destinations {
		key := Normalize(name)
		if key == "" {
			return nil, errors.New("destination with empty name")
		}
		if _, dup := s.destinations[key]; dup {
			return nil, fmt.Errorf("duplicate destination %q", key)
		}
		if err := validate(key, d); err != nil {
			return nil, err
		}

		dest := Destination{
			Activities:     append([]Activity(nil), d.Activities...),
			Accommodations: append([]Accommodation(nil), d.Accommodations...),
			Food:           append([]Food(nil), d.Food...),
		}
		s.destinations[key] = &dest
	}

	return s, nil
}

// Lookup returns the destination matching name, ignoring case.
func (s *Store) Lookup(name string) (*Destination, error) {
	d, ok := s.destinations[Normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return d, nil
}

// Destinations returns all destination keys in sorted order.
func (s *Store) Destinations() []string {
	names := make([]string, 0, len(s.destinations))
	for name := range s.destinations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize returns the catalog key for a destination name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// validate rejects malformed records before they reach the synthesizer.
func validate(key string, d Destination) error {
	for i, a := range d.Activities {
		if err := checkItem(a.Name, a.Rating, a.Cost); err != nil {
			return fmt.Errorf("%s: activity %d: %w", key, i, err)
		}
	}
	for i, a := range d.Accommodations {
		if err := checkItem(a.Name, a.Rating, a.PricePerNight); err != nil {
			return fmt.Errorf("%s: accommodation %d: %w", key, i, err)
		}
	}
	for i, f := range d.Food {
		if err := checkItem(f.Name, f.Rating, f.AvgCost); err != nil {
			return fmt.Errorf("%s: food %d: %w", key, i, err)
		}
	}
	return nil
}

func checkItem(name string, rating *float64, cost float64) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if cost < 0 {
		return fmt.Errorf("%s: cost must be >= 0, got %g", name, cost)
	}
	if rating != nil && (*rating < 0 || *rating > 5) {
		return fmt.Errorf("%s: rating must be 0-5, got %g", name, *rating)
	}
	return nil
}
