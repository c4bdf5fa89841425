package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/metrics"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "auth", operation, status)
	s.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.SessionOutput, error) {
	start := time.Now()
	output, err := s.next.Login(ctx, input)
	s.record(ctx, "login", start, err)
	return output, err
}

// Refresh records metrics for refresh operations.
func (s *sessionUseCaseWithMetrics) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.SessionOutput, error) {
	start := time.Now()
	output, err := s.next.Refresh(ctx, refreshToken)
	s.record(ctx, "refresh", start, err)
	return output, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context, refreshToken string) error {
	start := time.Now()
	err := s.next.Logout(ctx, refreshToken)
	s.record(ctx, "logout", start, err)
	return err
}

// CleanExpired records metrics for expired-token sweeps.
func (s *sessionUseCaseWithMetrics) CleanExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	deleted, err := s.next.CleanExpired(ctx)
	s.record(ctx, "clean_expired", start, err)
	return deleted, err
}
