package services

import "context"

// Authorizer decides whether the caller carried by ctx may manage the store.
type Authorizer interface {
	// AuthorizeAdmin returns apperrors.ErrUnauthorized unless the caller holds
	// the manage_options capability.
	AuthorizeAdmin(ctx context.Context) error
}
