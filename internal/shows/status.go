package shows

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusAccepted  Status = "accepted"
	StatusHold      Status = "hold"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusAccepted, StatusHold, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// BlocksDate reports whether a show in this status occupies its day on
// the venue calendar.
func (s Status) BlocksDate() bool {
	return s == StatusConfirmed || s == StatusAccepted || s == StatusHold
}
