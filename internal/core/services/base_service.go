package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/dual_price_app/internal/apperrors"
	portssvc "github.com/SscSPs/dual_price_app/internal/core/ports/services"
	"github.com/SscSPs/dual_price_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.Authorizer
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeAdmin checks that the caller may manage the store. Without an
// authorizer every caller is refused.
func (s *BaseService) AuthorizeAdmin(ctx context.Context) error {
	if s.Authorizer == nil {
		s.LogWarn(ctx, "No authorizer configured, refusing admin operation")
		return apperrors.ErrUnauthorized
	}
	return s.Authorizer.AuthorizeAdmin(ctx)
}
