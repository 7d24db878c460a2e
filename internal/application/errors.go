package application

import "errors"

// Signaled conditions surfaced to the transport layer. Handlers map
// these onto status codes; anything else is a generic store failure.
var (
	ErrHomeNotFound       = errors.New("home not found")
	ErrNotHomeOwner       = errors.New("caller does not own this listing")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidProductKey  = errors.New("invalid product key")

	// ErrHomeMissingImage marks a data-integrity violation: a stored
	// home with zero images. Listing creation always attaches at least
	// one image, so this is never substituted with a placeholder.
	ErrHomeMissingImage = errors.New("home has no images")
)
