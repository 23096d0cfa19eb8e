// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and refresh-token rotation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/dbx"
	"github.com/spendtrack/spendtrack/internal/logging"
	"github.com/spendtrack/spendtrack/internal/server/auth"
	"github.com/spendtrack/spendtrack/internal/server/config"
	"github.com/spendtrack/spendtrack/internal/server/models"
	"github.com/spendtrack/spendtrack/internal/server/repositories/refreshtokens"
	"github.com/spendtrack/spendtrack/internal/server/repositories/repomanager"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	AccessToken   string
	RefreshToken  string
	UserID        string
	AccessExpires time.Time
}

// RefreshResult is returned by a successful RefreshToken rotation.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides the authentication workflows:
//   - Register: create accounts with salted password hashes
//   - Login: verify credentials, issue a refresh token and an access token
//   - RefreshToken: rotate refresh tokens and mint new access tokens
//
// Every method returns either a value or an error carrying one of the
// common error codes; internal fault details are logged, never returned.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	tokenConfig                  auth.TokenConfig
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	saltSize                     int
	logger                       logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokenConfig: auth.TokenConfig{
			Secret:   []byte(cfg.SecretKey),
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		},
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		saltSize:                     auth.DefaultSaltSize,
		logger:                       logger,
	}
}

// Register creates a new active user. The email must not belong to an
// existing active account; a deactivated account's email may be reused.
// Input shape and password policy are enforced by the transport layer.
func (s *UserService) Register(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	exists, err := repo.ActiveEmailExists(ctx, email)
	if err != nil {
		s.logger.Error(ctx, "error checking email existence", "error", err)
		return nil, common.ErrPersistenceFailure
	}
	if exists {
		return nil, common.ErrEmailAlreadyExists
	}

	salt, err := auth.GenerateSalt(s.saltSize)
	if err != nil {
		s.logger.Error(ctx, "error generating salt", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: auth.HashPassword(password, salt),
		PasswordSalt: salt,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	u, err := repo.Create(ctx, user)
	if err != nil {
		s.logger.Error(ctx, "error creating user", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	return u, nil
}

// Login verifies the email/password pair and, on success, persists a new
// refresh token and mints an access token. Unknown email and wrong password
// produce the same generic failure so accounts cannot be enumerated.
// Prior refresh tokens stay valid: concurrent sessions are allowed.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAuthenticationFailed
		}
		s.logger.Error(ctx, "error searching user", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	// Deactivated accounts cannot authenticate.
	if !user.Active {
		return nil, common.ErrAuthenticationFailed
	}

	if !auth.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, common.ErrAuthenticationFailed
	}

	now := time.Now().UTC()

	refresh, err := s.createRefreshToken(ctx, s.db, user.ID, now)
	if err != nil {
		return nil, err
	}

	access, err := auth.GenerateAccessToken(s.tokenConfig, user.Email, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "error generating access token", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	return &LoginResult{
		AccessToken:   access,
		RefreshToken:  refresh.Token,
		UserID:        user.ID,
		AccessExpires: now.Add(s.accessTokenValidityDuration),
	}, nil
}

// RefreshToken exchanges a live refresh token for a new token pair. The
// replacement insert and the revocation of the original run in one
// transaction: every successful refresh consumes exactly one token and
// produces exactly one, and a consumed token can never be replayed.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	now := time.Now().UTC()

	token, err := s.repomanager.RefreshTokens(s.db).FindValid(ctx, refreshToken, now)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidRefreshToken
		}
		s.logger.Error(ctx, "error searching refresh token", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Orphaned token; do not leak the inconsistency to the caller.
			return nil, common.ErrInvalidRefreshToken
		}
		s.logger.Error(ctx, "error searching token owner", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	// Deactivating an account cuts off its refresh tokens too.
	if !user.Active {
		return nil, common.ErrInvalidRefreshToken
	}

	var replacement *models.RefreshToken
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)

		var txErr error
		replacement, txErr = s.createRefreshTokenRepo(ctx, repoTx, token.UserID, now)
		if txErr != nil {
			return txErr
		}

		// A concurrent rotation of the same token loses here: the row is
		// already revoked, Revoke reports not-found, and the transaction
		// rolls back the replacement.
		return repoTx.Revoke(ctx, token.ID, now)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidRefreshToken
		}
		var wf *common.Error
		if errors.As(err, &wf) {
			return nil, wf
		}
		s.logger.Error(ctx, "error rotating refresh token", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	access, err := auth.GenerateAccessToken(s.tokenConfig, user.Email, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "error generating access token", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	return &RefreshResult{AccessToken: access, RefreshToken: replacement.Token}, nil
}

// GetBySubject resolves the account behind an access-token subject. Used by
// the transport layer to attach the authenticated user to a request.
func (s *UserService) GetBySubject(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAuthenticationFailed
		}
		s.logger.Error(ctx, "error searching user", "error", err)
		return nil, common.ErrPersistenceFailure
	}
	if !user.Active {
		return nil, common.ErrAuthenticationFailed
	}
	return user, nil
}

// TokenConfig exposes the immutable signing configuration for verifiers.
func (s *UserService) TokenConfig() auth.TokenConfig {
	return s.tokenConfig
}

// --- helpers below ---

func (s *UserService) createRefreshToken(ctx context.Context, db dbx.DBTX, userID string, now time.Time) (*models.RefreshToken, error) {
	return s.createRefreshTokenRepo(ctx, s.repomanager.RefreshTokens(db), userID, now)
}

func (s *UserService) createRefreshTokenRepo(ctx context.Context, repo refreshtokens.Repository, userID string, now time.Time) (*models.RefreshToken, error) {
	value, err := auth.GenerateRefreshTokenValue()
	if err != nil {
		s.logger.Error(ctx, "error generating refresh token value", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	token := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(s.refreshTokenValidityDuration),
	}

	if err := repo.Create(ctx, token); err != nil {
		s.logger.Error(ctx, "error creating refresh token", "error", err)
		return nil, common.ErrPersistenceFailure
	}

	return token, nil
}
