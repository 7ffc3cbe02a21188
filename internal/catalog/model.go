// Package catalog provides the per-destination reference data used to build itineraries.
package catalog

// Activity is a one-time excursion or experience.
type Activity struct {
	Name   string   `yaml:"name" json:"name"`
	Rating *float64 `yaml:"rating,omitempty" json:"rating,omitempty"`
	Cost   float64  `yaml:"cost" json:"cost"`
}

// Accommodation is a place to stay, priced per night.
type Accommodation struct {
	Name          string   `yaml:"name" json:"name"`
	Rating        *float64 `yaml:"rating,omitempty" json:"rating,omitempty"`
	PricePerNight float64  `yaml:"price_per_night" json:"price_per_night"`
}

// Food is a dish or meal, priced per serving.
type Food struct {
	Name    string   `yaml:"name" json:"name"`
	Rating  *float64 `yaml:"rating,omitempty" json:"rating,omitempty"`
	AvgCost float64  `yaml:"avg_cost" json:"avg_cost"`
}

// Destination holds everything that can be planned for one place.
type Destination struct {
	Activities     []Activity      `yaml:"activities" json:"activities"`
	Accommodations []Accommodation `yaml:"accommodations" json:"accommodations"`
	Food           []Food          `yaml:"food" json:"food"`
}

// Complete reports whether every item list has at least one entry.
func (d *Destination) Complete() bool {
	return len(d.Activities) > 0 && len(d.Accommodations) > 0 && len(d.Food) > 0
}
