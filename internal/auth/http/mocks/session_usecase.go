// Package mocks provides mock implementations for auth HTTP handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

// MockSessionUseCase is a mock implementation of usecase.SessionUseCase.
type MockSessionUseCase struct {
	mock.Mock
}

func (m *MockSessionUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.SessionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionOutput), args.Error(1)
}

func (m *MockSessionUseCase) Refresh(
	ctx context.Context,
	refreshToken string,
) (*authDomain.SessionOutput, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.SessionOutput), args.Error(1)
}

func (m *MockSessionUseCase) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockSessionUseCase) CleanExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
