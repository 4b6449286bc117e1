package chat

import "fmt"

type State int

const (
	Idle State = iota
	CollectingFrom
	CollectingTo
	CollectingDate
	CollectingClass
	CollectingPassengers
	Confirming
)

var stateNames = [...]string{
	Idle:                 "Idle",
	CollectingFrom:       "CollectingFrom",
	CollectingTo:         "CollectingTo",
	CollectingDate:       "CollectingDate",
	CollectingClass:      "CollectingClass",
	CollectingPassengers: "CollectingPassengers",
	Confirming:           "Confirming",
}

func (s State) Valid() bool {
	switch s {
	case Idle, CollectingFrom, CollectingTo, CollectingDate, CollectingClass, CollectingPassengers, Confirming:
		return true
	}
	return false
}

func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown chat state %q", text)
}
