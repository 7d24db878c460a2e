package repository

import (
	"context"
	"errors"

	"github.com/realtora/realtor-api/internal/domain/entity"
)

// ErrNotFound is returned by repositories when the requested row does
// not exist. Store failures are returned as-is and must stay
// distinguishable from it.
var ErrNotFound = errors.New("not found")

// HomeFilter is the sparse listing search predicate. Every field is
// optional; the zero value means "all listings". Only fields that are
// set end up in the store query.
type HomeFilter struct {
	City         string
	MinPrice     *int64
	MaxPrice     *int64
	PropertyType *entity.PropertyType
}

// HomeWithImages pairs a home's scalar fields with its images in store
// order. List queries fetch at most the first image per home.
type HomeWithImages struct {
	Home   entity.Home
	Images []entity.Image
}

// HomeDetail is the single-item projection: all images plus the owning
// realtor's contact info.
type HomeDetail struct {
	Home    entity.Home
	Images  []entity.Image
	Realtor entity.Contact
}

// HomeUpdate carries a partial update. Nil fields are left untouched.
// A non-nil ImageURLs slice replaces the photo set by URL: matching
// rows are kept, new URLs inserted, absent URLs deleted.
type HomeUpdate struct {
	Address           *string
	City              *string
	Price             *int64
	PropertyType      *entity.PropertyType
	NumberOfBedrooms  *int
	NumberOfBathrooms *int
	LandSize          *int
	ImageURLs         []string
}

type HomeRepository interface {
	// FindMany returns homes matching filter, each with at most its
	// first image. An empty result is ([], nil); the caller decides
	// what that means.
	FindMany(ctx context.Context, filter HomeFilter) ([]HomeWithImages, error)
	FindByID(ctx context.Context, id int64) (*HomeDetail, error)
	// OwnerID resolves the home's current realtor without fetching the
	// rest of the row.
	OwnerID(ctx context.Context, homeID int64) (int64, error)
	// Create persists the home and its images in one transaction and
	// fills in the assigned ID and timestamps.
	Create(ctx context.Context, h *entity.Home, imageURLs []string) error
	Update(ctx context.Context, id int64, patch HomeUpdate) error
	// Delete removes the home's images and then the home itself, in
	// that order, in one transaction.
	Delete(ctx context.Context, id int64) error
}
