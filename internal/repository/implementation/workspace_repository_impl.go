package implementation

import (
	"context"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepositoryImpl struct {
	gormStore[entity.Workspace, model.Workspace]
}

func NewWorkspaceRepository(db *gorm.DB) contract.WorkspaceRepository {
	m := mapper.NewWorkspaceMapper()
	return &WorkspaceRepositoryImpl{newGormStore(db, m.ToModel, m.ToEntity)}
}

// Members

type WorkspaceMemberRepositoryImpl struct {
	gormStore[entity.WorkspaceMember, model.WorkspaceMember]
}

func NewWorkspaceMemberRepository(db *gorm.DB) contract.WorkspaceMemberRepository {
	m := mapper.NewWorkspaceMapper()
	return &WorkspaceMemberRepositoryImpl{newGormStore(db, m.MemberToModel, m.MemberToEntity)}
}

// Delete removes one membership; members are keyed by workspace and user.
func (r *WorkspaceMemberRepositoryImpl) Delete(ctx context.Context, workspaceId, userId uuid.UUID) error {
	return r.deleteWhere(ctx, "workspace_id = ? AND user_id = ?", workspaceId, userId)
}

func (r *WorkspaceMemberRepositoryImpl) DeleteByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error {
	return r.deleteWhere(ctx, "workspace_id = ?", workspaceId)
}

func (r *WorkspaceMemberRepositoryImpl) CountByWorkspaceIds(ctx context.Context, workspaceIds []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(workspaceIds))
	if len(workspaceIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		WorkspaceId uuid.UUID
		Total       int64
	}
	err := r.db.WithContext(ctx).Model(&model.WorkspaceMember{}).
		Select("workspace_id, COUNT(*) AS total").
		Where("workspace_id IN ?", workspaceIds).
		Group("workspace_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.WorkspaceId] = row.Total
	}
	return counts, nil
}

// Activities

type ActivityRepositoryImpl struct {
	gormStore[entity.Activity, model.Activity]
}

func NewActivityRepository(db *gorm.DB) contract.ActivityRepository {
	m := mapper.NewWorkspaceMapper()
	return &ActivityRepositoryImpl{newGormStore(db, m.ActivityToModel, m.ActivityToEntity)}
}

func (r *ActivityRepositoryImpl) DeleteByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error {
	return r.deleteWhere(ctx, "workspace_id = ?", workspaceId)
}
