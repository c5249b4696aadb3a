package cache

import "fmt"

// Key builders shared by the services that cache read paths.
const (
	prefixActiveRequests = "tourboard:requests:active"
	prefixRequestBids    = "tourboard:requests:%s:bids"
	prefixVenueLookup    = "tourboard:venues:%s:availability"
)

func KeyActiveRequests() string {
	return prefixActiveRequests
}

func KeyRequestBids(tourRequestID string) string {
	return fmt.Sprintf(prefixRequestBids, tourRequestID)
}

func KeyVenueAvailability(venueID string) string {
	return fmt.Sprintf(prefixVenueLookup, venueID)
}
