package bids

import (
	"tourboard/internal/requests"
	"tourboard/internal/shows"
)

// AcceptBidResponse carries the accepted bid, every sibling the cascade
// auto-cancelled (so their venues can be notified), the completed parent
// request, and the show created from the winning terms.
type AcceptBidResponse struct {
	Bid               *VenueBid             `json:"bid"`
	CancelledSiblings []VenueBid            `json:"cancelled_siblings"`
	Request           *requests.TourRequest `json:"request"`
	Show              *shows.Show           `json:"show"`
}
