package service

import (
	"context"
	"fmt"

	"github.com/ignatzorin/mediadb-backend/internal/models"
)

// IdentitySeeder создаёт демо-пользователя и его рабочее пространство.
type IdentitySeeder interface {
	SeedDemo(ctx context.Context, user *models.User, workspace *models.Workspace, member *models.WorkspaceMember) error
}

// SeedResult описывает созданные демо-записи.
type SeedResult struct {
	User      *models.User            `json:"user"`
	Workspace *models.Workspace       `json:"workspace"`
	Member    *models.WorkspaceMember `json:"member"`
}

// SeedService создаёт демо-записи, на которые ссылаются ассеты и категории.
type SeedService struct {
	identities IdentitySeeder
}

// NewSeedService создаёт новый сервис для генерации данных.
func NewSeedService(identities IdentitySeeder) *SeedService {
	return &SeedService{identities: identities}
}

// SeedDemo идемпотентно создаёт demo-user, demo-workspace и членство.
func (s *SeedService) SeedDemo(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{
		User: &models.User{
			ID:          models.DemoUserID,
			Email:       models.DemoUserEmail,
			DisplayName: models.DemoUserDisplayName,
		},
		Workspace: &models.Workspace{
			ID:   models.DemoWorkspaceID,
			Name: models.DemoWorkspaceName,
		},
		Member: &models.WorkspaceMember{
			ID:          models.DemoWorkspaceID + ":" + models.DemoUserID,
			WorkspaceID: models.DemoWorkspaceID,
			UserID:      models.DemoUserID,
		},
	}

	if err := s.identities.SeedDemo(ctx, result.User, result.Workspace, result.Member); err != nil {
		return nil, fmt.Errorf("seed service: %w", err)
	}
	return result, nil
}
