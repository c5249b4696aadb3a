package inquiries

type Status string

const (
	StatusPending   Status = "pending"
	StatusViewed    Status = "viewed"
	StatusResponded Status = "responded"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusExpired   Status = "expired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusViewed, StatusResponded, StatusAccepted, StatusDeclined, StatusExpired:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// IsOpen reports whether the thread still takes responses or a resolution.
func (s Status) IsOpen() bool {
	switch s {
	case StatusPending, StatusViewed, StatusResponded:
		return true
	}
	return false
}
