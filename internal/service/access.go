package service

import (
	"context"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// membership loads the caller's member row, nil when not a member.
func membership(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId, userId uuid.UUID) (*entity.WorkspaceMember, error) {
	return uow.WorkspaceMemberRepository().FindOne(ctx, specification.MemberOf{WorkspaceID: workspaceId, UserID: userId})
}

// requireMember answers 404 when the workspace does not exist and 403 when
// the caller is not one of its members.
func requireMember(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId, userId uuid.UUID) (*entity.Workspace, *entity.WorkspaceMember, error) {
	workspace, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspaceId})
	if err != nil {
		return nil, nil, err
	}
	if workspace == nil {
		return nil, nil, apperror.NotFound("", "Workspace not found")
	}

	member, err := membership(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, nil, err
	}
	if member == nil {
		return nil, nil, apperror.Forbidden("You are not a member of this workspace")
	}
	return workspace, member, nil
}

func requireManager(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId, userId uuid.UUID) (*entity.Workspace, *entity.WorkspaceMember, error) {
	workspace, member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, nil, err
	}
	if !member.Role.CanManage() {
		return nil, nil, apperror.Forbidden("Only workspace owners and admins can do this")
	}
	return workspace, member, nil
}

// requireWriter checks that the caller may add content to the workspace.
func requireWriter(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId, userId uuid.UUID) error {
	_, member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}
	if !member.Role.CanWrite() {
		return apperror.Forbidden("Viewers cannot add content to this workspace")
	}
	return nil
}

// canRead reports whether the caller may see an item owned by authorId,
// optionally placed in a workspace.
func canRead(ctx context.Context, uow unitofwork.UnitOfWork, userId, authorId uuid.UUID, workspaceId *uuid.UUID) (bool, error) {
	if authorId == userId {
		return true, nil
	}
	if workspaceId == nil {
		return false, nil
	}
	member, err := membership(ctx, uow, *workspaceId, userId)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

// canModify allows the author, or an owner or admin of the item's workspace.
func canModify(ctx context.Context, uow unitofwork.UnitOfWork, userId, authorId uuid.UUID, workspaceId *uuid.UUID) (bool, error) {
	if authorId == userId {
		return true, nil
	}
	if workspaceId == nil {
		return false, nil
	}
	member, err := membership(ctx, uow, *workspaceId, userId)
	if err != nil {
		return false, err
	}
	return member != nil && member.Role.CanManage(), nil
}

func parseOptionalUUID(raw, field string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeInvalidID, "Invalid "+field)
	}
	return &id, nil
}

// cleanTags trims, drops empties and removes duplicates, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = trimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
