package booking

import "fmt"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled can be stored and listed; no operation here produces it.
	StatusCanceled Status = "CANCELED"
)

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Decide applies an owner's decision. APPROVED is final; every other status
// may move to APPROVED or REJECTED, including REJECTED to REJECTED.
func (s Status) Decide(approved bool) (Status, error) {
	if s == StatusApproved {
		return s, ErrAlreadyApproved
	}
	if approved {
		return StatusApproved, nil
	}
	return StatusRejected, nil
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// State is the listing filter accepted by the booking list endpoints.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"  // start < now < end
	StatePast     State = "PAST"     // end < now
	StateFuture   State = "FUTURE"   // start > now
	StateWaiting  State = "WAITING"  // status match
	StateRejected State = "REJECTED" // status match
)

// ParseState is case-sensitive. Unknown values fail with ErrUnsupportedState.
func ParseState(s string) (State, error) {
	switch st := State(s); st {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return st, nil
	}
	return "", ErrUnsupportedState
}
