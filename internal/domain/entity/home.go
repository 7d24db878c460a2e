package entity

import "time"

// PropertyType is the closed set of listing categories.
type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyResidential, PropertyCondo:
		return true
	}
	return false
}

// Home is the aggregate root for the listing domain.
// RealtorID identifies the owning agent and never changes after creation.
type Home struct {
	ID                int64
	Address           string
	City              string
	Price             int64
	PropertyType      PropertyType
	NumberOfBedrooms  int
	NumberOfBathrooms int
	LandSize          int
	RealtorID         int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Image is a photo attached to a home. Images never outlive their home.
type Image struct {
	ID     int64
	URL    string
	HomeID int64
}

// Contact is the identity surface exposed on detail views: the owning
// realtor on a home, the sending buyer on an inquiry.
type Contact struct {
	Name  string
	Email string
	Phone string
}
