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

type NoteRepositoryImpl struct {
	gormStore[entity.Note, model.Note]
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	m := mapper.NewNoteMapper()
	return &NoteRepositoryImpl{newGormStore(db, m.ToModel, m.ToEntity)}
}

func (r *NoteRepositoryImpl) DeleteByWorkspaceId(ctx context.Context, workspaceId uuid.UUID) error {
	return r.deleteWhere(ctx, "workspace_id = ?", workspaceId)
}
