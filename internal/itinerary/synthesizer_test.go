package itinerary

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/trip-planner/internal/catalog"
)

// scriptedRand replays fixed values and records every IntN bound it was asked for.
type scriptedRand struct {
	ints   []int
	floats []float64
	bounds []int
}

func (r *scriptedRand) IntN(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func defaultCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.Default()
	require.NoError(t, err)
	return s
}

func TestGenerateBahrainBudgetThresholds(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.99, 0.99, 0.99}}
	s := NewSynthesizer(defaultCatalog(t), r, nil)

	it, err := s.Generate("bahrain", 90, 3, "trip")
	require.NoError(t, err)
	require.Len(t, it.Days, 3)

	// daily budget 30: 8 activities cost <= 10, no stay <= 15 (fallback to all 3),
	// 2 dishes <= 7.5.
	assert.Equal(t, []int{8, 3, 2, 8, 3, 2, 8, 3, 2}, r.bounds)

	for _, day := range it.Days {
		assert.LessOrEqual(t, day.Activities[0].Cost, 10.0)
		assert.LessOrEqual(t, day.Food[0].AvgCost, 7.5)
	}
}

func TestGenerateSecondMeal(t *testing.T) {
	r := &scriptedRand{
		ints:   []int{0, 0, 1, 3},
		floats: []float64{0.5},
	}
	s := NewSynthesizer(defaultCatalog(t), r, nil)

	it, err := s.Generate("bahrain", 90, 1, "trip")
	require.NoError(t, err)

	food := it.Days[0].Food
	require.Len(t, food, 2)
	assert.Equal(t, "Luqaimat", food[0].Name)
	// second dish is drawn from the unfiltered list
	assert.Equal(t, "Luqaimat", food[1].Name)
	assert.Equal(t, []int{8, 3, 2, 4}, r.bounds)
}

func TestGenerateNoBudgetDisablesFiltering(t *testing.T) {
	r := &scriptedRand{floats: []float64{0.99, 0.99}}
	s := NewSynthesizer(defaultCatalog(t), r, nil)

	_, err := s.Generate("Bahrain", 0, 2, "trip")
	require.NoError(t, err)

	assert.Equal(t, []int{11, 3, 4, 11, 3, 4}, r.bounds)
}

func TestGenerateFallbackWhenNothingAffordable(t *testing.T) {
	s := NewSynthesizer(defaultCatalog(t), &scriptedRand{ints: []int{5, 2, 0}}, nil)

	// daily budget 1: only free activities qualify; no stay or dish does.
	it, err := s.Generate("bahrain", 1, 1, "trip")
	require.NoError(t, err)

	day := it.Days[0]
	assert.Equal(t, "Sunset viewing", day.Activities[0].Name)
	assert.Equal(t, "Luxury Resort Sakhir", day.Accommodation.Name)
	assert.Equal(t, "Machboos", day.Food[0].Name)
}

func TestGenerateStructure(t *testing.T) {
	s := NewSynthesizer(defaultCatalog(t), NewRand(42), nil)

	for _, days := range []int{1, 3, 7, 14} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			it, err := s.Generate("bahrain", 300, days, "")
			require.NoError(t, err)
			require.Len(t, it.Days, days)
			assert.Equal(t, days, it.NumDays)
			assert.Equal(t, "bahrain", it.Destination)

			for i, day := range it.Days {
				assert.Equal(t, i+1, day.Day)
				assert.Len(t, day.Activities, 1)
				assert.NotEmpty(t, day.Accommodation.Name)
				assert.GreaterOrEqual(t, len(day.Food), 1)
				assert.LessOrEqual(t, len(day.Food), 2)
			}
		})
	}
}

func TestGenerateItemsComeFromCatalog(t *testing.T) {
	store := defaultCatalog(t)
	d, err := store.Lookup("bahrain")
	require.NoError(t, err)

	known := map[string]bool{}
	for _, a := range d.Activities {
		known["activity:"+a.Name] = true
	}
	for _, a := range d.Accommodations {
		known["stay:"+a.Name] = true
	}
	for _, f := range d.Food {
		known["food:"+f.Name] = true
	}

	s := NewSynthesizer(store, NewRand(7), nil)
	for i := 0; i < 50; i++ {
		it, err := s.Generate("bahrain", float64(i*20), 3, "")
		require.NoError(t, err)
		for _, day := range it.Days {
			assert.True(t, known["activity:"+day.Activities[0].Name])
			assert.True(t, known["stay:"+day.Accommodation.Name])
			for _, f := range day.Food {
				assert.True(t, known["food:"+f.Name])
			}
		}
	}
}

func TestGenerateFilteredOrFallback(t *testing.T) {
	store := defaultCatalog(t)
	d, err := store.Lookup("bahrain")
	require.NoError(t, err)

	s := NewSynthesizer(store, NewRand(99), nil)

	for _, budget := range []float64{1, 30, 90, 240, 600} {
		t.Run(fmt.Sprintf("budget %g", budget), func(t *testing.T) {
			const days = 3
			daily := budget / days

			anyActivity, anyStay, anyFood := false, false, false
			for _, a := range d.Activities {
				anyActivity = anyActivity || a.Cost <= daily/3
			}
			for _, a := range d.Accommodations {
				anyStay = anyStay || a.PricePerNight <= daily/2
			}
			for _, f := range d.Food {
				anyFood = anyFood || f.AvgCost <= daily/4
			}

			for i := 0; i < 20; i++ {
				it, err := s.Generate("bahrain", budget, days, "")
				require.NoError(t, err)
				for _, day := range it.Days {
					if anyActivity {
						assert.LessOrEqual(t, day.Activities[0].Cost, daily/3)
					}
					if anyStay {
						assert.LessOrEqual(t, day.Accommodation.PricePerNight, daily/2)
					}
					if anyFood {
						assert.LessOrEqual(t, day.Food[0].AvgCost, daily/4)
					}
				}
			}
		})
	}
}

func TestGenerateDefaultID(t *testing.T) {
	s := NewSynthesizer(defaultCatalog(t), NewRand(1), nil)
	pattern := regexp.MustCompile(`^itinerary_[1-9][0-9]{2}$`)

	for i := 0; i < 20; i++ {
		it, err := s.Generate("bahrain", 0, 1, "")
		require.NoError(t, err)
		assert.Regexp(t, pattern, it.ID)
	}
}

func TestGenerateErrors(t *testing.T) {
	store, err := catalog.NewStore(map[string]catalog.Destination{
		"sparse": {
			Activities:     []catalog.Activity{{Name: "Walk"}},
			Accommodations: []catalog.Accommodation{{Name: "Tent", PricePerNight: 5}},
		},
		"full": {
			Activities:     []catalog.Activity{{Name: "Walk"}},
			Accommodations: []catalog.Accommodation{{Name: "Tent", PricePerNight: 5}},
			Food:           []catalog.Food{{Name: "Bread", AvgCost: 1}},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		destination string
		budget      float64
		days        int
		want        error
	}{
		{"unknown destination", "atlantis", 100, 3, catalog.ErrNotFound},
		{"missing food", "sparse", 100, 3, ErrInsufficientData},
		{"zero days", "full", 100, 0, ErrInvalidDays},
		{"too many days", "full", 100, MaxDays + 1, ErrInvalidDays},
		{"absurd day count", "full", 90, 1 << 52, ErrInvalidDays},
		{"negative budget", "full", -10, 3, ErrInvalidBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSynthesizer(store, NewRand(3), nil)
			it, err := s.Generate(tt.destination, tt.budget, tt.days, "")
			assert.Nil(t, it)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerateBatch(t *testing.T) {
	s := NewSynthesizer(defaultCatalog(t), NewRand(5), nil)

	b, err := s.GenerateBatch("bahrain", 3, 90, 2)
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	for i, it := range b.Itineraries {
		assert.Equal(t, fmt.Sprintf("itinerary_%d", i+1), it.ID)
		assert.Len(t, it.Days, 2)
	}

	assert.Same(t, b.Itineraries[1], b.Get("itinerary_2"))
	assert.Nil(t, b.Get("itinerary_9"))
}

func TestGenerateBatchErrors(t *testing.T) {
	s := NewSynthesizer(defaultCatalog(t), NewRand(5), nil)

	_, err := s.GenerateBatch("bahrain", 0, 90, 2)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = s.GenerateBatch("bahrain", MaxCount+1, 90, 2)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = s.GenerateBatch("nowhere", 2, 90, 2)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestGenerateUpperBounds(t *testing.T) {
	s := NewSynthesizer(defaultCatalog(t), NewRand(8), nil)

	it, err := s.Generate("bahrain", 0, MaxDays, "")
	require.NoError(t, err)
	assert.Len(t, it.Days, MaxDays)

	b, err := s.GenerateBatch("bahrain", MaxCount, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, MaxCount, b.Len())
}

func TestGenerateStoresCatalogKey(t *testing.T) {
	s := NewSynthesizer(defaultCatalog(t), NewRand(4), nil)

	it, err := s.Generate("  BaHrain ", 90, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "bahrain", it.Destination)
}
