package entity

import "time"

// Message is a buyer inquiry about a home. RealtorID is always resolved
// from the home's current owner when the message is created; it is never
// taken from the caller.
type Message struct {
	ID        int64
	HomeID    int64
	BuyerID   int64
	RealtorID int64
	Text      string
	CreatedAt time.Time
}
