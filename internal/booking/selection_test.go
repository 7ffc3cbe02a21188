package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Selection
		wantErr bool
	}{
		{"single", "2", Selection{Indices: []int{2}}, false},
		{"list", "1,3,4", Selection{Indices: []int{1, 3, 4}}, false},
		{"spaces", " 1 , 3 ,4 ", Selection{Indices: []int{1, 3, 4}}, false},
		{"negative parses", "-1", Selection{Indices: []int{-1}}, false},
		{"done", "done", Selection{Done: true}, false},
		{"done mixed case", "  DoNe\n", Selection{Done: true}, false},
		{"words", "first, second", Selection{}, true},
		{"empty", "", Selection{}, true},
		{"trailing comma", "1,", Selection{}, true},
		{"decimal", "1.5", Selection{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSelection(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func selectorOptions() []Option {
	return []Option{
		{Name: "one", Available: true},
		{Name: "two", Available: false},
		{Name: "three", Available: true},
	}
}

func TestSelectorConfirms(t *testing.T) {
	s := NewSelector(selectorOptions())
	assert.Equal(t, Selecting, s.State())

	assert.Nil(t, s.Selection())

	got, err := s.Submit("1,2,3")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, Done, s.State())
	assert.Equal(t, got, s.Confirmed())
	assert.Equal(t, []int{1, 2, 3}, s.Selection())
	assert.Equal(t, got, Confirm(selectorOptions(), s.Selection()))
}

func TestSelectorRetriesThenConfirms(t *testing.T) {
	s := NewSelector(selectorOptions())

	_, err := s.Submit("abc")
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, Selecting, s.State())

	_, err = s.Submit("2, 7")
	assert.ErrorIs(t, err, ErrNothingConfirmed)
	assert.Equal(t, Selecting, s.State())

	got, err := s.Submit("3")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "three", got[0].Name)
	assert.Equal(t, Done, s.State())
}

func TestSelectorDoneWithoutConfirming(t *testing.T) {
	s := NewSelector(selectorOptions())

	got, err := s.Submit("DONE")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, Done, s.State())
}

func TestSelectorClosedAfterDone(t *testing.T) {
	s := NewSelector(selectorOptions())
	_, err := s.Submit("1")
	require.NoError(t, err)

	got, err := s.Submit("3")
	assert.ErrorIs(t, err, ErrSelectionClosed)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Name)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "selecting", Selecting.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "State(7)", State(7).String())
}
