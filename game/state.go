package game

import (
	"fmt"
	"strings"
)

// State is the outcome of a play.
type State int

// States.
const (
	WON              State = iota
	TOO_MANY_ACTIONS       //nolint:revive
	LOST
	ERROR
)

//nolint:gochecknoglobals
var stateNames = [...]string{
	WON:              "WON",
	TOO_MANY_ACTIONS: "TOO_MANY_ACTIONS",
	LOST:             "LOST",
	ERROR:            "ERROR",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState parses a state name, ignoring case.
func ParseState(s string) (State, error) {
	for i, name := range stateNames {
		if strings.EqualFold(s, name) {
			return State(i), nil
		}
	}

	return 0, ErrUnknownState.Wrap(fmt.Errorf("%q", s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}

	*s = v

	return nil
}

// Result reports how a play ended.
type Result struct {
	State State `json:"state"`
	// Message explains a failure. It is empty when the level was won.
	Message string `json:"message,omitempty"`
	// Actions is the number of actions counted in the script.
	Actions int `json:"actions"`
}
