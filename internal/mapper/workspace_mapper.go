package mapper

import (
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type WorkspaceMapper struct{}

func NewWorkspaceMapper() *WorkspaceMapper {
	return &WorkspaceMapper{}
}

func (m *WorkspaceMapper) ToEntity(w *model.Workspace) *entity.Workspace {
	if w == nil {
		return nil
	}
	return &entity.Workspace{
		Id:          w.Id,
		Name:        w.Name,
		Description: w.Description,
		OwnerId:     w.OwnerId,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func (m *WorkspaceMapper) ToModel(w *entity.Workspace) *model.Workspace {
	if w == nil {
		return nil
	}
	return &model.Workspace{
		Id:          w.Id,
		Name:        w.Name,
		Description: w.Description,
		OwnerId:     w.OwnerId,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// Member Mappers

func (m *WorkspaceMapper) MemberToEntity(wm *model.WorkspaceMember) *entity.WorkspaceMember {
	if wm == nil {
		return nil
	}
	return &entity.WorkspaceMember{
		Id:          wm.Id,
		WorkspaceId: wm.WorkspaceId,
		UserId:      wm.UserId,
		Role:        entity.WorkspaceRole(wm.Role),
		JoinedAt:    wm.JoinedAt,
	}
}

func (m *WorkspaceMapper) MemberToModel(wm *entity.WorkspaceMember) *model.WorkspaceMember {
	if wm == nil {
		return nil
	}
	return &model.WorkspaceMember{
		Id:          wm.Id,
		WorkspaceId: wm.WorkspaceId,
		UserId:      wm.UserId,
		Role:        string(wm.Role),
		JoinedAt:    wm.JoinedAt,
	}
}

// Activity Mappers

func (m *WorkspaceMapper) ActivityToEntity(a *model.Activity) *entity.Activity {
	if a == nil {
		return nil
	}
	return &entity.Activity{
		Id:          a.Id,
		WorkspaceId: a.WorkspaceId,
		ActorId:     a.ActorId,
		Type:        a.Type,
		Subject:     a.Subject,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *WorkspaceMapper) ActivityToModel(a *entity.Activity) *model.Activity {
	if a == nil {
		return nil
	}
	return &model.Activity{
		Id:          a.Id,
		WorkspaceId: a.WorkspaceId,
		ActorId:     a.ActorId,
		Type:        a.Type,
		Subject:     a.Subject,
		CreatedAt:   a.CreatedAt,
	}
}
