package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	"github.com/SscSPs/dual_price_app/internal/core/domain"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/middleware"
)

// capabilityAuthorizer grants admin operations to callers whose authenticated
// principal holds manage_options.
type capabilityAuthorizer struct{}

// NewCapabilityAuthorizer creates the Authorizer used by the HTTP surface.
func NewCapabilityAuthorizer() portssvc.Authorizer {
	return capabilityAuthorizer{}
}

func (capabilityAuthorizer) AuthorizeAdmin(ctx context.Context) error {
	if middleware.HasCapability(ctx, domain.CapabilityManageOptions) {
		return nil
	}
	userID, _ := middleware.GetUserIDFromCtx(ctx)
	return fmt.Errorf("%w: %q lacks %s", apperrors.ErrUnauthorized, userID, domain.CapabilityManageOptions)
}
