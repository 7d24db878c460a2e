package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeOwner(t *testing.T) {
	guard := NewOwnershipGuard(&fakeHomeRepo{owners: map[int64]int64{5: 9}})

	assert.NoError(t, guard.Authorize(context.Background(), 9, 5))
}

func TestAuthorizeNonOwner(t *testing.T) {
	guard := NewOwnershipGuard(&fakeHomeRepo{owners: map[int64]int64{5: 9}})

	err := guard.Authorize(context.Background(), 777, 5)
	assert.ErrorIs(t, err, ErrNotHomeOwner)
}

// A missing home must read as NotFound even when the caller would also
// have failed the ownership check.
func TestAuthorizeMissingHomeBeatsOwnership(t *testing.T) {
	guard := NewOwnershipGuard(&fakeHomeRepo{owners: map[int64]int64{}})

	err := guard.Authorize(context.Background(), 777, 5)
	assert.ErrorIs(t, err, ErrHomeNotFound)
	assert.NotErrorIs(t, err, ErrNotHomeOwner)
}
