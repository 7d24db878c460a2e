package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/realtora/realtor-api/internal/domain/entity"
	"github.com/realtora/realtor-api/internal/domain/repository"
	"github.com/realtora/realtor-api/pkg/helpers"
	"github.com/realtora/realtor-api/pkg/mailer"
	"github.com/realtora/realtor-api/pkg/mailer/templates"
)

// Caller is the authenticated identity handed in by the transport
// layer.
type Caller struct {
	ID   int64
	Name string
}

// InquiryService routes buyer inquiries to the agent who currently
// owns the listing.
type InquiryService struct {
	Homes       repository.HomeRepository
	Messages    repository.MessageRepository
	Users       repository.UserRepository
	Guard       *OwnershipGuard
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	MailEnabled bool
}

func NewInquiryService(homes repository.HomeRepository, messages repository.MessageRepository, users repository.UserRepository, guard *OwnershipGuard, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailEnabled bool) *InquiryService {
	return &InquiryService{
		Homes:       homes,
		Messages:    messages,
		Users:       users,
		Guard:       guard,
		Pub:         pub,
		Logger:      logger,
		MailEnabled: mailEnabled,
	}
}

// Inquire creates a buyer message about a home. The recipient realtor
// is resolved from the home's current owner at send time; a realtor id
// supplied by the caller is never trusted. Repeated calls create
// repeated inquiries.
func (s *InquiryService) Inquire(ctx context.Context, buyer Caller, homeID int64, text string) (*entity.Message, error) {
	realtorID, err := s.Homes.OwnerID(ctx, homeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrHomeNotFound
	}
	if err != nil {
		return nil, err
	}

	m := &entity.Message{
		HomeID:    homeID,
		BuyerID:   buyer.ID,
		RealtorID: realtorID,
		Text:      text,
	}
	if err := s.Messages.Create(ctx, m); err != nil {
		return nil, err
	}

	s.notifyRealtor(ctx, realtorID, buyer.Name, m)
	return m, nil
}

// ListByHome returns a home's inquiries to its owning realtor. The
// guard keeps other callers out and reports a missing home as
// NotFound.
func (s *InquiryService) ListByHome(ctx context.Context, callerID, homeID int64) ([]repository.MessageWithBuyer, error) {
	if err := s.Guard.Authorize(ctx, callerID, homeID); err != nil {
		return nil, err
	}
	return s.Messages.ListByHome(ctx, homeID)
}

// notifyRealtor enqueues an email notification for the owning realtor.
// Delivery is best-effort; the inquiry is already persisted.
func (s *InquiryService) notifyRealtor(ctx context.Context, realtorID int64, buyerName string, m *entity.Message) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	realtor, err := s.Users.GetByID(ctx, realtorID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("realtor_id", realtorID).Warn("inquiry notification: realtor lookup failed")
		}
		return
	}
	job := mailer.EmailJob{
		To:       realtor.Email,
		Template: templates.InquiryReceived,
		Data: map[string]any{
			"RealtorName": realtor.Name,
			"BuyerName":   buyerName,
			"HomeID":      m.HomeID,
			"Text":        m.Text,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("message_id", m.ID).Warn("inquiry notification publish failed")
	}
}
