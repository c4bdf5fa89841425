package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authService "github.com/allisson/staffdocs/internal/auth/service"
	"github.com/allisson/staffdocs/internal/events"
	"github.com/allisson/staffdocs/internal/user/domain"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	eventBus        *events.Bus
}

// Create registers a new account with a hashed password.
func (u *userUseCase) Create(
	ctx context.Context,
	actor authDomain.Principal,
	input *domain.CreateUserInput,
) (*domain.User, error) {
	if err := authDomain.RequireCreateUser(actor); err != nil {
		return nil, err
	}

	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	passwordHash, err := u.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		Role:         input.Role,
		IsActive:     input.IsActive,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves an account.
func (u *userUseCase) Get(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.User, error) {
	if err := authDomain.RequireViewUser(actor, id); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}

// List pages through accounts.
func (u *userUseCase) List(
	ctx context.Context,
	actor authDomain.Principal,
	offset, limit int,
) ([]*domain.User, error) {
	if err := authDomain.RequireListUsers(actor); err != nil {
		return nil, err
	}
	return u.userRepo.List(ctx, offset, limit)
}

// Update modifies the mutable profile fields.
func (u *userUseCase) Update(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	if err := authDomain.RequireUpdateUser(actor, id); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.UpdatedAt = time.Now().UTC()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword re-hashes and stores a new password.
func (u *userUseCase) ChangePassword(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	newPassword string,
) error {
	if err := authDomain.RequireChangePassword(actor, id); err != nil {
		return err
	}

	passwordHash, err := u.passwordService.Hash(newPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, id, passwordHash, time.Now().UTC())
}

// SetActive activates or deactivates an account and publishes the matching event.
func (u *userUseCase) SetActive(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	active bool,
) error {
	if err := authDomain.RequireSetUserActive(actor, id); err != nil {
		return err
	}

	if err := u.userRepo.SetActive(ctx, id, active, time.Now().UTC()); err != nil {
		return err
	}

	topic := events.TopicUserDeactivated
	if active {
		topic = events.TopicUserActivated
	}
	u.eventBus.Publish(ctx, topic, map[string]any{
		"user_id":  id.String(),
		"actor_id": actor.ID.String(),
	})
	return nil
}

// Delete removes an account permanently.
func (u *userUseCase) Delete(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) error {
	if err := authDomain.RequireDeleteUser(actor, id); err != nil {
		return err
	}
	return u.userRepo.Delete(ctx, id)
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	eventBus *events.Bus,
) UserUseCase {
	return &userUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		eventBus:        eventBus,
	}
}
