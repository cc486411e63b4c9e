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

type DocumentRepositoryImpl struct {
	gormStore[entity.Document, model.Document]
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	m := mapper.NewDocumentMapper()
	return &DocumentRepositoryImpl{newGormStore(db, m.ToModel, m.ToEntity)}
}

func (r *DocumentRepositoryImpl) DeleteByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error {
	return r.deleteWhere(ctx, "workspace_id = ?", workspaceId)
}
