package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authService "github.com/allisson/staffdocs/internal/auth/service"
	"github.com/allisson/staffdocs/internal/config"
	"github.com/allisson/staffdocs/internal/database"
	apperrors "github.com/allisson/staffdocs/internal/errors"
	"github.com/allisson/staffdocs/internal/events"
)

// sessionUseCase implements SessionUseCase.
type sessionUseCase struct {
	config          *config.Config
	accounts        AccountDirectory
	refreshRepo     RefreshTokenRepository
	tokenCodec      authService.TokenCodec
	passwordService authService.PasswordService
	txManager       database.TxManager
	eventBus        *events.Bus
	logger          *slog.Logger
}

// Login authenticates a user and issues a token pair.
//
// Unknown username, wrong password and inactive account all return
// ErrInvalidCredentials so responses never reveal which check failed.
func (s *sessionUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.SessionOutput, error) {
	account, err := s.accounts.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordService.Compare(input.Password, account.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, authDomain.ErrInvalidCredentials
	}

	return s.issueSession(ctx, account)
}

// Refresh rotates a refresh token and issues a new token pair.
//
// The consume step is a conditional update matching only an active, unexpired
// record; of two concurrent refreshes with the same token exactly one wins.
// The loser's failure is classified by re-reading the record: a record revoked
// by rotation (replaced_by set) means replay; a record revoked by logout stays
// an ordinary invalid token. On replay
// the whole replaced_by chain and every active record of the user are revoked,
// forcing a fresh login everywhere.
func (s *sessionUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.SessionOutput, error) {
	claims, err := s.tokenCodec.Verify(refreshToken, authDomain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, authDomain.ErrInvalidCredentials
	}

	tokenHash := authService.HashToken(refreshToken)
	now := time.Now().UTC()
	successorID := uuid.Must(uuid.NewV7())

	var output *authDomain.SessionOutput
	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		consumed, err := s.refreshRepo.Consume(ctx, tokenHash, successorID, now)
		if err != nil {
			return err
		}

		// A codec-verified token must belong to its record.
		if consumed.UserID != account.ID {
			return authDomain.ErrInvalidToken
		}

		output, err = s.issueSessionWithTokenID(ctx, account, successorID)
		return err
	})
	if err != nil {
		if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
			return nil, s.classifyConsumeFailure(ctx, tokenHash, now)
		}
		return nil, err
	}

	return output, nil
}

// classifyConsumeFailure distinguishes why no active record matched the
// consume predicate: missing record, expired record, or replay of a rotated
// token. Replay triggers the chain and per-user revocations.
func (s *sessionUseCase) classifyConsumeFailure(ctx context.Context, tokenHash string, now time.Time) error {
	record, err := s.refreshRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
			return authDomain.ErrRefreshTokenNotFound
		}
		return err
	}

	if record.RevokedAt != nil {
		// Only a rotated record signals replay. A record revoked by logout
		// has no successor; presenting it again is just an invalid token.
		if record.ReplacedBy == nil {
			return authDomain.ErrRefreshTokenNotFound
		}

		if err := s.refreshRepo.RevokeChain(ctx, record.ID, now); err != nil {
			s.logger.Error("failed to revoke refresh token chain",
				slog.String("token_id", record.ID.String()),
				slog.Any("error", err),
			)
		}
		if err := s.refreshRepo.RevokeAllForUser(ctx, record.UserID, now); err != nil {
			s.logger.Error("failed to revoke user refresh tokens",
				slog.String("user_id", record.UserID.String()),
				slog.Any("error", err),
			)
		}

		s.eventBus.Publish(ctx, events.TopicAuthReuseDetected, map[string]any{
			"user_id":  record.UserID.String(),
			"token_id": record.ID.String(),
		})

		return authDomain.ErrRefreshTokenReused
	}

	return authDomain.ErrRefreshTokenExpired
}

// Logout revokes the record behind a refresh token. Unknown tokens and
// already-revoked records succeed silently so responses stay indistinguishable.
func (s *sessionUseCase) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := authService.HashToken(refreshToken)

	record, err := s.refreshRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
			return nil
		}
		return err
	}

	return s.refreshRepo.Revoke(ctx, record.ID, time.Now().UTC())
}

// CleanExpired deletes refresh-token records past their expiry.
func (s *sessionUseCase) CleanExpired(ctx context.Context) (int64, error) {
	return s.refreshRepo.DeleteExpired(ctx, time.Now().UTC())
}

// issueSession creates a fresh refresh record and signs a token pair.
func (s *sessionUseCase) issueSession(ctx context.Context, account *Account) (*authDomain.SessionOutput, error) {
	return s.issueSessionWithTokenID(ctx, account, uuid.Must(uuid.NewV7()))
}

func (s *sessionUseCase) issueSessionWithTokenID(
	ctx context.Context,
	account *Account,
	tokenID uuid.UUID,
) (*authDomain.SessionOutput, error) {
	refreshToken, err := s.tokenCodec.IssueRefresh(account.ID, tokenID, s.config.RefreshTokenExpiration)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &authDomain.RefreshToken{
		ID:        tokenID,
		TokenHash: authService.HashToken(refreshToken),
		UserID:    account.ID,
		ExpiresAt: now.Add(s.config.RefreshTokenExpiration),
		CreatedAt: now,
	}
	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	principal := authDomain.Principal{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
	}
	accessToken, err := s.tokenCodec.IssueAccess(principal, s.config.AccessTokenExpiration)
	if err != nil {
		return nil, err
	}

	return &authDomain.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiration.Seconds()),
	}, nil
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	cfg *config.Config,
	accounts AccountDirectory,
	refreshRepo RefreshTokenRepository,
	tokenCodec authService.TokenCodec,
	passwordService authService.PasswordService,
	txManager database.TxManager,
	eventBus *events.Bus,
	logger *slog.Logger,
) SessionUseCase {
	return &sessionUseCase{
		config:          cfg,
		accounts:        accounts,
		refreshRepo:     refreshRepo,
		tokenCodec:      tokenCodec,
		passwordService: passwordService,
		txManager:       txManager,
		eventBus:        eventBus,
		logger:          logger,
	}
}
