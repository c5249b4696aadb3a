package notifications

import (
	"context"
	"fmt"

	"tourboard/internal/bids"
	"tourboard/internal/inquiries"
	"tourboard/internal/requests"

	"github.com/google/uuid"
)

// RequestResolver looks up the parent request so artist-directed events
// reach the right recipient. requests.Service satisfies it.
type RequestResolver interface {
	GetRequest(ctx context.Context, id uuid.UUID) (*requests.TourRequest, error)
}

// BidEventAdapter implements bids.EventPublisher and
// inquiries.InquiryNotifier on top of the notification bus.
type BidEventAdapter struct {
	service  *Service
	requests RequestResolver
}

func NewBidEventAdapter(service *Service, requests RequestResolver) *BidEventAdapter {
	return &BidEventAdapter{service: service, requests: requests}
}

func (a *BidEventAdapter) BidSubmitted(ctx context.Context, bid *bids.VenueBid) {
	req, err := a.requests.GetRequest(ctx, bid.TourRequestID)
	if err != nil {
		return
	}
	n := NewNotification(NotificationTypeBidSubmitted, req.ArtistID, req.ArtistName,
		fmt.Sprintf("New bid from %s", bid.VenueName))
	a.withBidContext(n, bid)
	n.TemplateData["guarantee"] = bid.Guarantee
	n.TemplateData["proposed_date"] = bid.ProposedDate.Format("2006-01-02")
	a.service.publish(ctx, n)
}

func (a *BidEventAdapter) BidHeld(ctx context.Context, bid *bids.VenueBid) {
	n := NewNotification(NotificationTypeBidHeld, bid.VenueID, bid.VenueName,
		"Your bid was placed on hold")
	a.withBidContext(n, bid)
	if bid.HoldPosition != nil {
		n.TemplateData["hold_position"] = *bid.HoldPosition
	}
	if bid.HeldUntil != nil {
		n.TemplateData["held_until"] = bid.HeldUntil.Format("2006-01-02")
	}
	a.service.publish(ctx, n)
}

func (a *BidEventAdapter) BidAccepted(ctx context.Context, bid *bids.VenueBid, cancelledSiblings []bids.VenueBid) {
	winner := NewNotification(NotificationTypeBidAccepted, bid.VenueID, bid.VenueName,
		"Your bid was accepted")
	a.withBidContext(winner, bid)
	a.service.publish(ctx, winner)

	// Losing venues learn why their bid went away.
	for i := range cancelledSiblings {
		sibling := &cancelledSiblings[i]
		n := NewNotification(NotificationTypeBidCancelled, sibling.VenueID, sibling.VenueName,
			"Your bid was not selected")
		a.withBidContext(n, sibling)
		n.TemplateData["reason"] = sibling.CancelledReason
		a.service.publish(ctx, n)
	}
}

func (a *BidEventAdapter) BidDeclined(ctx context.Context, bid *bids.VenueBid) {
	n := NewNotification(NotificationTypeBidDeclined, bid.VenueID, bid.VenueName,
		"Your bid was declined")
	a.withBidContext(n, bid)
	n.TemplateData["reason"] = bid.DeclinedReason
	a.service.publish(ctx, n)
}

func (a *BidEventAdapter) BidCancelled(ctx context.Context, bid *bids.VenueBid) {
	req, err := a.requests.GetRequest(ctx, bid.TourRequestID)
	if err != nil {
		return
	}
	n := NewNotification(NotificationTypeBidCancelled, req.ArtistID, req.ArtistName,
		fmt.Sprintf("%s withdrew their bid", bid.VenueName))
	a.withBidContext(n, bid)
	a.service.publish(ctx, n)
}

func (a *BidEventAdapter) HoldsExpired(ctx context.Context, expired []bids.VenueBid) {
	notifications := make([]*Notification, 0, len(expired))
	for i := range expired {
		bid := &expired[i]
		n := NewNotification(NotificationTypeHoldExpired, bid.VenueID, bid.VenueName,
			"Your held bid expired")
		a.withBidContext(n, bid)
		notifications = append(notifications, n)
	}
	if a.service.producer == nil || len(notifications) == 0 {
		return
	}
	if err := a.service.producer.PublishBatch(ctx, notifications); err != nil {
		a.service.log.WithError(err).Error("failed to publish hold expiry batch")
	}
}

func (a *BidEventAdapter) InquiryReceived(ctx context.Context, inquiry *inquiries.BookingInquiry) {
	n := NewNotification(NotificationTypeInquiryReceived, inquiry.ToAccountID, "",
		fmt.Sprintf("New booking inquiry: %s", inquiry.Subject))
	inquiryID := inquiry.ID
	n.InquiryID = &inquiryID
	a.service.publish(ctx, n)
}

func (a *BidEventAdapter) withBidContext(n *Notification, bid *bids.VenueBid) {
	bidID := bid.ID
	tourRequestID := bid.TourRequestID
	n.BidID = &bidID
	n.TourRequestID = &tourRequestID
	n.TemplateData["venue_name"] = bid.VenueName
}
