package service

import (
	"context"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

type IProfileService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
	bcryptCost int
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory, bcryptCost int) IProfileService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &profileService{
		uowFactory: uowFactory,
		bcryptCost: bcryptCost,
	}
}

func (s *profileService) Get(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(apperror.CodeUserNotFound, "User not found")
	}

	var stats dto.ProfileStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.Workspaces, err = uow.WorkspaceRepository().Count(gctx, specification.WorkspacesOfMember{UserID: userId})
		return err
	})
	g.Go(func() error {
		var err error
		stats.Notes, err = uow.NoteRepository().Count(gctx, specification.AuthoredBy{UserID: userId})
		return err
	})
	g.Go(func() error {
		var err error
		stats.Documents, err = uow.DocumentRepository().Count(gctx, specification.AuthoredBy{UserID: userId})
		return err
	})
	g.Go(func() error {
		var err error
		stats.Cards, err = uow.CardRepository().Count(gctx, specification.AuthoredBy{UserID: userId})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		UserResponse: toUserResponse(user),
		Stats:        stats,
	}, nil
}

func (s *profileService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(apperror.CodeUserNotFound, "User not found")
	}

	if req.Name != nil {
		user.Name = trimSpace(*req.Name)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarUrl != nil {
		user.AvatarURL = trimSpace(*req.AvatarUrl)
	}
	if req.JobTitle != nil {
		user.JobTitle = trimSpace(*req.JobTitle)
	}
	if req.Location != nil {
		user.Location = trimSpace(*req.Location)
	}
	if req.Website != nil {
		user.Website = trimSpace(*req.Website)
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	res := toUserResponse(user)
	return &res, nil
}

func (s *profileService) ChangePassword(ctx context.Context, userId uuid.UUID, req *dto.ChangePasswordRequest) error {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound(apperror.CodeUserNotFound, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperror.Unauthenticated(apperror.CodeInvalidPassword, "Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	return uow.UserRepository().UpdatePassword(ctx, userId, string(hash))
}
