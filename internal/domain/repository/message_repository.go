package repository

import (
	"context"

	"github.com/realtora/realtor-api/internal/domain/entity"
)

// MessageWithBuyer is an inquiry joined with the sending buyer's
// contact info, for the owning realtor's inbox view.
type MessageWithBuyer struct {
	Message entity.Message
	Buyer   entity.Contact
}

type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	ListByHome(ctx context.Context, homeID int64) ([]MessageWithBuyer, error)
}
