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
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenIssuer signs the bearer token returned on signup and login.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

type AuthOptions struct {
	BcryptCost       int
	MaxLoginAttempts int
	AttemptWindow    time.Duration
}

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Verify(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory    unitofwork.RepositoryFactory
	tokens        TokenIssuer
	loginAttempts contract.LoginAttemptRepository
	eventService  IEventService
	metrics       *metrics.Collector
	logger        logger.ILogger
	opts          AuthOptions
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	tokens TokenIssuer,
	loginAttempts contract.LoginAttemptRepository,
	eventService IEventService,
	metrics *metrics.Collector,
	logger logger.ILogger,
	opts AuthOptions,
) IAuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.MaxLoginAttempts <= 0 {
		opts.MaxLoginAttempts = 5
	}
	if opts.AttemptWindow <= 0 {
		opts.AttemptWindow = 15 * time.Minute
	}
	return &authService{
		uowFactory:    uowFactory,
		tokens:        tokens,
		loginAttempts: loginAttempts,
		eventService:  eventService,
		metrics:       metrics,
		logger:        logger,
		opts:          opts,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict(apperror.CodeEmailExists, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Name:         trimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.UserRoleUser,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(apperror.CodeEmailExists, "Email already registered")
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Signups.Inc()
	}
	s.eventService.Publish(ctx, events.New(constant.EventUserSignedUp, map[string]interface{}{
		"userId": user.Id.String(),
		"email":  user.Email,
	}))

	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	failures, err := s.loginAttempts.Failures(ctx, email)
	if err != nil {
		s.logger.Warn("AUTH", "Login attempt store unavailable", map[string]interface{}{"error": err.Error()})
	}
	if failures >= s.opts.MaxLoginAttempts {
		s.observeLogin("throttled")
		return nil, apperror.TooManyRequests("Too many failed login attempts, try again later")
	}

	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.recordFailure(ctx, email)
		s.observeLogin("unknown_user")
		return nil, apperror.NotFound("", "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, email)
		s.observeLogin("invalid_password")
		return nil, apperror.Unauthenticated(apperror.CodeInvalidPassword, "Invalid password")
	}

	if err := s.loginAttempts.Reset(ctx, email); err != nil {
		s.logger.Warn("AUTH", "Failed to reset login attempts", map[string]interface{}{"error": err.Error()})
	}
	if err := uow.UserRepository().TouchLastLogin(ctx, user.Id); err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLoginAt = &now

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}

	s.observeLogin("success")
	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *authService) Verify(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthenticated(apperror.CodeUserNotFound, "User no longer exists")
	}

	res := toUserResponse(user)
	return &res, nil
}

func (s *authService) recordFailure(ctx context.Context, email string) {
	if _, err := s.loginAttempts.RecordFailure(ctx, email, s.opts.AttemptWindow); err != nil {
		s.logger.Warn("AUTH", "Failed to record login attempt", map[string]interface{}{"error": err.Error()})
	}
}

func (s *authService) observeLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(outcome)
	}
}
