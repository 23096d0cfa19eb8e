package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spendtrack/spendtrack/internal/common"
	"github.com/spendtrack/spendtrack/internal/dbx"
	"github.com/spendtrack/spendtrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.RefreshToken) error {

	query :=
		`INSERT INTO refresh_tokens (id, user_id, token, created_at, expires_at)
         VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		token.ID, token.UserID, token.Token, token.CreatedAt, token.ExpiresAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindValid(ctx context.Context, value string, now time.Time) (*models.RefreshToken, error) {
	query :=
		`SELECT id, user_id, token, created_at, expires_at
		 FROM refresh_tokens
		 WHERE token = $1 AND revoked_at IS NULL AND expires_at > $2
		 `

	token := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, value, now).Scan(
		&token.ID, &token.UserID, &token.Token, &token.CreatedAt, &token.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, id string, now time.Time) error {
	query :=
		`UPDATE refresh_tokens SET revoked_at = $2
		 WHERE id = $1 AND revoked_at IS NULL
		 `

	res, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		// Already revoked or never existed. The losing side of a concurrent
		// rotation ends up here and must roll back its replacement token.
		return common.ErrorNotFound
	}

	return nil
}
