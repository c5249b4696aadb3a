package requests

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusPaused    Status = "paused"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled, StatusPaused:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// AcceptsBids reports whether new bids may attach to a request in this
// status. Only active requests take bids.
func (s Status) AcceptsBids() bool {
	return s == StatusActive
}

// Flexibility describes how negotiable the routing of a ranged request is.
type Flexibility string

const (
	FlexibilityExactCities   Flexibility = "exact-cities"
	FlexibilityRegion        Flexibility = "region-flexible"
	FlexibilityRoute         Flexibility = "route-flexible"
)

func (f Flexibility) IsValid() bool {
	switch f {
	case FlexibilityExactCities, FlexibilityRegion, FlexibilityRoute:
		return true
	}
	return false
}

// Priority ranks how urgently the artist wants the date filled.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)
