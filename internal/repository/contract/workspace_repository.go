package contract

import (
	"context"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entity.Workspace) error
	Update(ctx context.Context, workspace *entity.Workspace) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workspace, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workspace, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type WorkspaceMemberRepository interface {
	Create(ctx context.Context, member *entity.WorkspaceMember) error
	Update(ctx context.Context, member *entity.WorkspaceMember) error
	Delete(ctx context.Context, workspaceId, userId uuid.UUID) error
	DeleteByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkspaceMember, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkspaceMember, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// CountByWorkspaceIds returns member counts keyed by workspace.
	CountByWorkspaceIds(ctx context.Context, workspaceIds []uuid.UUID) (map[uuid.UUID]int64, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	DeleteByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Activity, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
