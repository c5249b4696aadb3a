package inquiries

import (
	"context"
	"time"

	"tourboard/internal/shared/apperrors"
	"tourboard/internal/shared/config"
	"tourboard/pkg/logger"

	"github.com/google/uuid"
)

// InquiryNotifier mirrors the bid event publisher for the contact
// channel. Implemented by the notifications service.
type InquiryNotifier interface {
	InquiryReceived(ctx context.Context, inquiry *BookingInquiry)
}

type Service interface {
	CreateInquiry(ctx context.Context, fromAccountID uuid.UUID, req CreateInquiryRequest) (*BookingInquiry, error)

	// GetInquiry marks a pending thread as viewed when the recipient
	// opens it.
	GetInquiry(ctx context.Context, id, accountID uuid.UUID) (*BookingInquiry, error)

	ListForAccount(ctx context.Context, accountID uuid.UUID) ([]BookingInquiry, error)
	Respond(ctx context.Context, id, accountID uuid.UUID, req RespondRequest) (*BookingInquiry, error)
	Resolve(ctx context.Context, id, accountID uuid.UUID, action string) (*BookingInquiry, error)

	// ExpireOverdue is driven by the sweep job.
	ExpireOverdue(ctx context.Context) (int64, error)

	SetNotifier(notifier InquiryNotifier)
}

type service struct {
	repo     Repository
	cfg      config.NegotiationConfig
	notifier InquiryNotifier
	log      *logger.Logger
}

func NewService(repo Repository, cfg config.NegotiationConfig) Service {
	return &service{
		repo: repo,
		cfg:  cfg,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetNotifier(notifier InquiryNotifier) {
	s.notifier = notifier
}

func (s *service) CreateInquiry(ctx context.Context, fromAccountID uuid.UUID, req CreateInquiryRequest) (*BookingInquiry, error) {
	toAccountID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if toAccountID == fromAccountID {
		return nil, apperrors.ErrInvalidTransition
	}

	inquiry := &BookingInquiry{
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Subject:       req.Subject,
		Message:       req.Message,
		ProposedDate:  req.ProposedDate,
		Status:        StatusPending,
		ExpiresAt:     time.Now().Add(s.cfg.InquiryExpiry),
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, apperrors.NewPersistenceError("inquiries.Create", err)
	}

	if s.notifier != nil {
		s.notifier.InquiryReceived(ctx, inquiry)
	}
	return inquiry, nil
}

func (s *service) GetInquiry(ctx context.Context, id, accountID uuid.UUID) (*BookingInquiry, error) {
	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.isParty(inquiry, accountID) {
		return nil, apperrors.ErrUnauthorized
	}

	if inquiry.Status == StatusPending && inquiry.ToAccountID == accountID {
		if err := s.repo.UpdateStatus(ctx, id, StatusViewed); err != nil {
			s.log.WithError(err).Warn("failed to mark inquiry viewed")
		} else {
			inquiry.Status = StatusViewed
		}
	}
	return inquiry, nil
}

func (s *service) ListForAccount(ctx context.Context, accountID uuid.UUID) ([]BookingInquiry, error) {
	return s.repo.ListForAccount(ctx, accountID)
}

func (s *service) Respond(ctx context.Context, id, accountID uuid.UUID, req RespondRequest) (*BookingInquiry, error) {
	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.isParty(inquiry, accountID) {
		return nil, apperrors.ErrUnauthorized
	}
	if !inquiry.Status.IsOpen() {
		return nil, apperrors.ErrInvalidTransition
	}

	response := &BookingResponse{
		InquiryID: id,
		AccountID: accountID,
		Message:   req.Message,
	}
	if err := s.repo.AddResponse(ctx, response); err != nil {
		return nil, apperrors.NewPersistenceError("inquiries.AddResponse", err)
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusResponded); err != nil {
		return nil, apperrors.NewPersistenceError("inquiries.UpdateStatus", err)
	}

	return s.repo.GetByID(ctx, id)
}

// Resolve closes a thread; only the recipient may accept or decline.
func (s *service) Resolve(ctx context.Context, id, accountID uuid.UUID, action string) (*BookingInquiry, error) {
	inquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inquiry.ToAccountID != accountID {
		return nil, apperrors.ErrUnauthorized
	}
	if !inquiry.Status.IsOpen() {
		return nil, apperrors.ErrInvalidTransition
	}

	status := StatusDeclined
	if action == "accept" {
		status = StatusAccepted
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperrors.NewPersistenceError("inquiries.UpdateStatus", err)
	}

	inquiry.Status = status
	return inquiry, nil
}

func (s *service) ExpireOverdue(ctx context.Context) (int64, error) {
	count, err := s.repo.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return 0, apperrors.NewPersistenceError("inquiries.ExpireOverdue", err)
	}
	if count > 0 {
		s.log.Info("expired overdue inquiries", "count", count)
	}
	return count, nil
}

func (s *service) isParty(inquiry *BookingInquiry, accountID uuid.UUID) bool {
	return inquiry.FromAccountID == accountID || inquiry.ToAccountID == accountID
}
