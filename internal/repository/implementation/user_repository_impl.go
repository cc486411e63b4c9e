package implementation

import (
	"context"
	"time"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	gormStore[entity.User, model.User]
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	m := mapper.NewUserMapper()
	return &UserRepositoryImpl{newGormStore(db, m.ToModel, m.ToEntity)}
}

func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	return r.updateColumn(ctx, userId, "password_hash", hash)
}

func (r *UserRepositoryImpl) TouchLastLogin(ctx context.Context, userId uuid.UUID) error {
	return r.updateColumn(ctx, userId, "last_login_at", time.Now())
}
