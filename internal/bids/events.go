package bids

import "context"

// EventPublisher fans bid lifecycle events out to interested parties
// (email, analytics). Implemented by the notifications service; declared
// here to avoid a circular dependency. Publishing is best-effort and must
// never fail a mutation.
type EventPublisher interface {
	BidSubmitted(ctx context.Context, bid *VenueBid)
	BidHeld(ctx context.Context, bid *VenueBid)
	BidAccepted(ctx context.Context, bid *VenueBid, cancelledSiblings []VenueBid)
	BidDeclined(ctx context.Context, bid *VenueBid)
	BidCancelled(ctx context.Context, bid *VenueBid)
	HoldsExpired(ctx context.Context, expired []VenueBid)
}
