package service

import (
	"context"
	"time"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/pagination"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/pkg/events"

	"github.com/google/uuid"
)

type IWorkspaceService interface {
	List(ctx context.Context, userId uuid.UUID, params pagination.Params) (*pagination.Page[dto.WorkspaceResponse], error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	Get(ctx context.Context, userId, workspaceId uuid.UUID) (*dto.WorkspaceResponse, error)
	Update(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error)
	Delete(ctx context.Context, userId, workspaceId uuid.UUID) error
	Activity(ctx context.Context, userId, workspaceId uuid.UUID, params pagination.Params) (*pagination.Page[dto.ActivityResponse], error)
}

type workspaceService struct {
	uowFactory   unitofwork.RepositoryFactory
	eventService IEventService
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory, eventService IEventService) IWorkspaceService {
	return &workspaceService{
		uowFactory:   uowFactory,
		eventService: eventService,
	}
}

func (s *workspaceService) List(ctx context.Context, userId uuid.UUID, params pagination.Params) (*pagination.Page[dto.WorkspaceResponse], error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	scope := specification.WorkspacesOfMember{UserID: userId}
	page, err := pagination.Fetch(ctx, params,
		func(ctx context.Context) (int64, error) {
			return uow.WorkspaceRepository().Count(ctx, scope)
		},
		func(ctx context.Context, p pagination.Params) ([]*entity.Workspace, error) {
			return uow.WorkspaceRepository().FindAll(ctx,
				scope,
				specification.OrderBy{Field: "created_at", Desc: true},
				specification.Pagination{Limit: p.Limit, Offset: p.Offset()},
			)
		},
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(page.Items))
	for i, w := range page.Items {
		ids[i] = w.Id
	}
	counts, err := uow.WorkspaceMemberRepository().CountByWorkspaceIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	roles := make(map[uuid.UUID]entity.WorkspaceRole, len(ids))
	if len(ids) > 0 {
		members, err := uow.WorkspaceMemberRepository().FindAll(ctx,
			specification.ByUserID{UserID: userId},
			specification.ByWorkspaceIDs{WorkspaceIDs: ids},
		)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			roles[m.WorkspaceId] = m.Role
		}
	}

	return pagination.Map(page, func(w *entity.Workspace) dto.WorkspaceResponse {
		return toWorkspaceResponse(w, roles[w.Id], counts[w.Id])
	}), nil
}

func (s *workspaceService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	workspace := &entity.Workspace{
		Id:          uuid.New(),
		Name:        trimSpace(req.Name),
		Description: trimSpace(req.Description),
		OwnerId:     userId,
	}
	if workspace.Name == "" {
		return nil, apperror.Validation("", "Workspace name is required")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.WorkspaceRepository().Create(ctx, workspace); err != nil {
		return nil, err
	}
	if err := uow.WorkspaceMemberRepository().Create(ctx, &entity.WorkspaceMember{
		Id:          uuid.New(),
		WorkspaceId: workspace.Id,
		UserId:      userId,
		Role:        entity.WorkspaceRoleOwner,
		JoinedAt:    time.Now(),
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.eventService.Publish(ctx, events.New(constant.EventWorkspaceCreated,
		constant.WorkspaceEvent(workspace.Id.String(), userId.String(), workspace.Name)))

	res := toWorkspaceResponse(workspace, entity.WorkspaceRoleOwner, 1)
	return &res, nil
}

func (s *workspaceService) Get(ctx context.Context, userId, workspaceId uuid.UUID) (*dto.WorkspaceResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	workspace, member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	members, err := listMembers(ctx, uow, workspaceId)
	if err != nil {
		return nil, err
	}

	res := toWorkspaceResponse(workspace, member.Role, int64(len(members)))
	res.Members = members
	return &res, nil
}

func (s *workspaceService) Update(ctx context.Context, userId, workspaceId uuid.UUID, req *dto.UpdateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	workspace, member, err := requireManager(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := trimSpace(*req.Name)
		if name == "" {
			return nil, apperror.Validation("", "Workspace name cannot be empty")
		}
		workspace.Name = name
	}
	if req.Description != nil {
		workspace.Description = trimSpace(*req.Description)
	}

	if err := uow.WorkspaceRepository().Update(ctx, workspace); err != nil {
		return nil, err
	}

	count, err := uow.WorkspaceMemberRepository().Count(ctx, specification.ByWorkspaceID{WorkspaceID: workspaceId})
	if err != nil {
		return nil, err
	}

	res := toWorkspaceResponse(workspace, member.Role, count)
	return &res, nil
}

func (s *workspaceService) Delete(ctx context.Context, userId, workspaceId uuid.UUID) error {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}

	workspace, member, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}
	if member.Role != entity.WorkspaceRoleOwner {
		return apperror.Forbidden("Only the workspace owner can delete it")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().ClearWorkspaceContexts(ctx, workspaceId); err != nil {
		return err
	}
	if err := uow.NoteRepository().DeleteByWorkspaceId(ctx, workspaceId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().DeleteByWorkspaceId(ctx, workspaceId); err != nil {
		return err
	}
	if err := uow.ActivityRepository().DeleteByWorkspaceId(ctx, workspaceId); err != nil {
		return err
	}
	if err := uow.WorkspaceMemberRepository().DeleteByWorkspaceId(ctx, workspaceId); err != nil {
		return err
	}
	if err := uow.WorkspaceRepository().Delete(ctx, workspaceId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.eventService.Publish(ctx, events.New(constant.EventWorkspaceDeleted,
		constant.WorkspaceEvent(workspaceId.String(), userId.String(), workspace.Name)))
	return nil
}

func (s *workspaceService) Activity(ctx context.Context, userId, workspaceId uuid.UUID, params pagination.Params) (*pagination.Page[dto.ActivityResponse], error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	if _, _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}

	scope := specification.ByWorkspaceID{WorkspaceID: workspaceId}
	page, err := pagination.Fetch(ctx, params,
		func(ctx context.Context) (int64, error) {
			return uow.ActivityRepository().Count(ctx, scope)
		},
		func(ctx context.Context, p pagination.Params) ([]*entity.Activity, error) {
			return uow.ActivityRepository().FindAll(ctx,
				scope,
				specification.OrderBy{Field: "created_at", Desc: true},
				specification.Pagination{Limit: p.Limit, Offset: p.Offset()},
			)
		},
	)
	if err != nil {
		return nil, err
	}

	actorIds := make([]uuid.UUID, 0, len(page.Items))
	for _, a := range page.Items {
		actorIds = append(actorIds, a.ActorId)
	}
	users, err := usersByIds(ctx, uow, actorIds)
	if err != nil {
		return nil, err
	}

	return pagination.Map(page, func(a *entity.Activity) dto.ActivityResponse {
		name := ""
		if u, ok := users[a.ActorId]; ok {
			name = u.Name
		}
		return toActivityResponse(a, name)
	}), nil
}

// listMembers returns the workspace members with their user details, in
// join order.
func listMembers(ctx context.Context, uow unitofwork.UnitOfWork, workspaceId uuid.UUID) ([]dto.MemberResponse, error) {
	members, err := uow.WorkspaceMemberRepository().FindAll(ctx,
		specification.ByWorkspaceID{WorkspaceID: workspaceId},
		specification.OrderBy{Field: "joined_at"},
	)
	if err != nil {
		return nil, err
	}

	userIds := make([]uuid.UUID, len(members))
	for i, m := range members {
		userIds[i] = m.UserId
	}
	users, err := usersByIds(ctx, uow, userIds)
	if err != nil {
		return nil, err
	}

	res := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		res = append(res, toMemberResponse(m, users[m.UserId]))
	}
	return res, nil
}

func usersByIds(ctx context.Context, uow unitofwork.UnitOfWork, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	out := make(map[uuid.UUID]*entity.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.Id] = u
	}
	return out, nil
}
