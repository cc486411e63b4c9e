package service

import (
	"context"
	"errors"
	"time"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/mailer"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IMemberService interface {
	List(ctx context.Context, userId, workspaceId uuid.UUID) ([]dto.MemberResponse, error)
	Add(ctx context.Context, userId uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error)
	UpdateRole(ctx context.Context, userId, workspaceId, targetId uuid.UUID, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	Remove(ctx context.Context, userId, workspaceId, targetId uuid.UUID) error
}

type memberService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	eventService IEventService
	logger       logger.ILogger
}

func NewMemberService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventService IEventService,
	logger logger.ILogger,
) IMemberService {
	return &memberService{
		uowFactory:   uowFactory,
		emailService: emailService,
		eventService: eventService,
		logger:       logger,
	}
}

func (s *memberService) List(ctx context.Context, userId, workspaceId uuid.UUID) ([]dto.MemberResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	if _, _, err := requireMember(ctx, uow, workspaceId, userId); err != nil {
		return nil, err
	}
	return listMembers(ctx, uow, workspaceId)
}

func (s *memberService) Add(ctx context.Context, userId uuid.UUID, req *dto.AddMemberRequest) (*dto.MemberResponse, error) {
	workspaceId, err := uuid.Parse(req.WorkspaceId)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeInvalidID, "Invalid workspaceId")
	}
	role := entity.WorkspaceRole(req.Role)
	if !role.Valid() || role == entity.WorkspaceRoleOwner {
		return nil, apperror.Validation("", "Role must be one of admin, member, viewer")
	}

	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	workspace, caller, err := requireManager(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, err
	}
	if role == entity.WorkspaceRoleAdmin && caller.Role != entity.WorkspaceRoleOwner {
		return nil, apperror.Forbidden("Only the workspace owner can grant the admin role")
	}

	invitee, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, apperror.NotFound(apperror.CodeUserNotFound, "No user with that email")
	}

	existing, err := membership(ctx, uow, workspaceId, invitee.Id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict(apperror.CodeMemberExists, "User is already a member of this workspace")
	}

	member := &entity.WorkspaceMember{
		Id:          uuid.New(),
		WorkspaceId: workspaceId,
		UserId:      invitee.Id,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	if err := uow.WorkspaceMemberRepository().Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(apperror.CodeMemberExists, "User is already a member of this workspace")
		}
		return nil, err
	}

	inviterName := ""
	if inviter, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}); err == nil && inviter != nil {
		inviterName = inviter.Name
	}
	go func(to, inviter, workspaceName string) {
		if err := s.emailService.SendWorkspaceInvite(to, inviter, workspaceName); err != nil {
			s.logger.Warn("MEMBER", "Failed to send invite email", map[string]interface{}{
				"email": to,
				"error": err.Error(),
			})
		}
	}(invitee.Email, inviterName, workspace.Name)

	s.eventService.Publish(ctx, events.New(constant.EventMemberAdded,
		constant.WorkspaceEvent(workspaceId.String(), userId.String(), invitee.Name)))

	res := toMemberResponse(member, invitee)
	return &res, nil
}

func (s *memberService) UpdateRole(ctx context.Context, userId, workspaceId, targetId uuid.UUID, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	role := entity.WorkspaceRole(req.Role)
	if !role.Valid() || role == entity.WorkspaceRoleOwner {
		return nil, apperror.Validation("", "Role must be one of admin, member, viewer")
	}

	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	_, caller, err := requireManager(ctx, uow, workspaceId, userId)
	if err != nil {
		return nil, err
	}

	target, err := membership(ctx, uow, workspaceId, targetId)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.NotFound("", "Member not found")
	}
	if target.Role == entity.WorkspaceRoleOwner {
		return nil, apperror.Forbidden("The owner's role cannot be changed")
	}
	// Admins cannot promote to admin or touch other admins.
	if caller.Role != entity.WorkspaceRoleOwner &&
		(role == entity.WorkspaceRoleAdmin || target.Role == entity.WorkspaceRoleAdmin) {
		return nil, apperror.Forbidden("Only the workspace owner can manage admins")
	}

	target.Role = role
	if err := uow.WorkspaceMemberRepository().Update(ctx, target); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: targetId})
	if err != nil {
		return nil, err
	}

	subject := string(role)
	if user != nil {
		subject = user.Name + " is now " + string(role)
	}
	s.eventService.Publish(ctx, events.New(constant.EventMemberRoleChange,
		constant.WorkspaceEvent(workspaceId.String(), userId.String(), subject)))

	res := toMemberResponse(target, user)
	return &res, nil
}

func (s *memberService) Remove(ctx context.Context, userId, workspaceId, targetId uuid.UUID) error {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}

	_, caller, err := requireMember(ctx, uow, workspaceId, userId)
	if err != nil {
		return err
	}

	target, err := membership(ctx, uow, workspaceId, targetId)
	if err != nil {
		return err
	}
	if target == nil {
		return apperror.NotFound("", "Member not found")
	}
	if target.Role == entity.WorkspaceRoleOwner {
		return apperror.Forbidden("The workspace owner cannot be removed")
	}

	leaving := userId == targetId
	if !leaving {
		if !caller.Role.CanManage() {
			return apperror.Forbidden("Only workspace owners and admins can remove members")
		}
		if caller.Role != entity.WorkspaceRoleOwner && target.Role == entity.WorkspaceRoleAdmin {
			return apperror.Forbidden("Only the workspace owner can remove admins")
		}
	}

	if err := uow.WorkspaceMemberRepository().Delete(ctx, workspaceId, targetId); err != nil {
		return err
	}

	subject := targetId.String()
	if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: targetId}); err == nil && user != nil {
		subject = user.Name
	}
	s.eventService.Publish(ctx, events.New(constant.EventMemberRemoved,
		constant.WorkspaceEvent(workspaceId.String(), userId.String(), subject)))
	return nil
}
