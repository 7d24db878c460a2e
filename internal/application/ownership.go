package application

import (
	"context"
	"errors"

	"github.com/realtora/realtor-api/internal/domain/repository"
)

// OwnershipGuard decides whether a caller may mutate or delete a
// listing. It is invoked once per mutating operation, before the
// lifecycle code runs; lifecycle methods do not re-check.
type OwnershipGuard struct {
	Homes repository.HomeRepository
}

func NewOwnershipGuard(homes repository.HomeRepository) *OwnershipGuard {
	return &OwnershipGuard{Homes: homes}
}

// Authorize compares the caller against the home's current owner. The
// existence lookup runs first so acting on a missing home reports
// ErrHomeNotFound, never ErrNotHomeOwner.
func (g *OwnershipGuard) Authorize(ctx context.Context, callerID, homeID int64) error {
	ownerID, err := g.Homes.OwnerID(ctx, homeID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrHomeNotFound
	}
	if err != nil {
		return err
	}
	if ownerID != callerID {
		return ErrNotHomeOwner
	}
	return nil
}
