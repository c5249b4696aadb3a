package bids

type Status string

const (
	StatusPending   Status = "pending"
	StatusHold      Status = "hold"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusHold, StatusAccepted, StatusDeclined, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusDeclined, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// CanResolve reports whether a bid in s may be accepted, declined or
// cancelled.
func (s Status) CanResolve() bool {
	return s == StatusPending || s == StatusHold
}

// Cancellation reasons stamped by the engine.
const (
	ReasonSelectedElsewhere = "Another venue was selected for this date"
	ReasonRequestDeleted    = "Show request was deleted"
	ReasonCancelledByVenue  = "Cancelled by venue"
)
