package booking

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DoneKeyword ends a selection session.
const DoneKeyword = "done"

var (
	// ErrInvalidSelection means the input was not a comma-separated list of numbers.
	ErrInvalidSelection = errors.New("invalid input: enter numbers separated by commas or 'done'")
	// ErrNothingConfirmed means no selected option was in range and available.
	ErrNothingConfirmed = errors.New("no valid or available items selected")
	// ErrSelectionClosed is returned by Submit once the session is done.
	ErrSelectionClosed = errors.New("selection already finished")
)

// Selection is parsed user input.
type Selection struct {
	Done    bool
	Indices []int
}

// ParseSelection parses "1, 3,4" into 1-based indices, or the done keyword.
func ParseSelection(input string) (Selection, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == DoneKeyword {
		return Selection{Done: true}, nil
	}

	parts := strings.Split(input, ",")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Selection{}, fmt.Errorf("%w: %q", ErrInvalidSelection, input)
		}
		indices = append(indices, n)
	}

	return Selection{Indices: indices}, nil
}

// State is the phase of a selection session.
type State int

const (
	Selecting State = iota
	Done
)

func (s State) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Selector runs the prompt loop over a ranked option list. It stays in
// Selecting until the user confirms at least one available option or types done.
type Selector struct {
	options   []Option
	state     State
	confirmed []Option
	selection []int
}

// NewSelector starts a session over options as displayed to the user.
func NewSelector(options []Option) *Selector {
	return &Selector{options: options, state: Selecting}
}

// State returns the current session state.
func (s *Selector) State() State {
	return s.state
}

// Confirmed returns the options confirmed so far.
func (s *Selector) Confirmed() []Option {
	return s.confirmed
}

// Selection returns the indices of the input that confirmed options, or nil.
func (s *Selector) Selection() []int {
	return s.selection
}

// Submit handles one line of user input. ErrInvalidSelection and
// ErrNothingConfirmed leave the session in Selecting so the caller can prompt again.
func (s *Selector) Submit(input string) ([]Option, error) {
	if s.state == Done {
		return s.confirmed, ErrSelectionClosed
	}

	sel, err := ParseSelection(input)
	if err != nil {
		return nil, err
	}
	if sel.Done {
		s.state = Done
		return s.confirmed, nil
	}

	confirmed := Confirm(s.options, sel.Indices)
	if len(confirmed) == 0 {
		return nil, ErrNothingConfirmed
	}

	s.confirmed = confirmed
	s.selection = sel.Indices
	s.state = Done
	return confirmed, nil
}
