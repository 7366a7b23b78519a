package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/mediadb-backend/internal/models"
	"github.com/ignatzorin/mediadb-backend/internal/repository/common"
)

// IdentityRepository создаёт пользователей и рабочие пространства для сидирования.
type IdentityRepository struct {
	db *sqlx.DB
}

// NewIdentityRepository создаёт экземпляр.
func NewIdentityRepository(db *sqlx.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// SeedDemo идемпотентно создаёт пользователя, пространство и членство в одной транзакции.
func (r *IdentityRepository) SeedDemo(ctx context.Context, user *models.User, workspace *models.Workspace, member *models.WorkspaceMember) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, user, `
			INSERT INTO users (id, email, display_name)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
			RETURNING id, email, display_name, created_at
		`, user.ID, user.Email, user.DisplayName); err != nil {
			return common.Classify("identity repository: upsert user", err)
		}

		if err := tx.GetContext(ctx, workspace, `
			INSERT INTO workspaces (id, name)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
			RETURNING id, name, created_at
		`, workspace.ID, workspace.Name); err != nil {
			return common.Classify("identity repository: upsert workspace", err)
		}

		if err := tx.GetContext(ctx, member, `
			INSERT INTO workspace_members (id, workspace_id, user_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (workspace_id, user_id) DO UPDATE SET user_id = EXCLUDED.user_id
			RETURNING id, workspace_id, user_id, created_at
		`, member.ID, member.WorkspaceID, member.UserID); err != nil {
			return common.Classify("identity repository: upsert member", err)
		}

		return nil
	})
}
