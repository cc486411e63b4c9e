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

type ChatRepositoryImpl struct {
	gormStore[entity.Chat, model.Chat]
}

func NewChatRepository(db *gorm.DB) contract.ChatRepository {
	m := mapper.NewChatMapper()
	return &ChatRepositoryImpl{newGormStore(db, m.ToModel, m.ToEntity)}
}

func (r *ChatRepositoryImpl) ClearContext(ctx context.Context, contextType entity.ChatContextType, contextId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Chat{}).
		Where("context_type = ? AND context_id = ?", string(contextType), contextId).
		Updates(map[string]interface{}{"context_type": "", "context_id": nil}).Error
}

func (r *ChatRepositoryImpl) ClearWorkspaceContexts(ctx context.Context, workspaceId uuid.UUID) error {
	db := r.db.WithContext(ctx)
	notes := db.Model(&model.Note{}).Select("id").Where("workspace_id = ?", workspaceId)
	documents := db.Model(&model.Document{}).Select("id").Where("workspace_id = ?", workspaceId)
	return db.Model(&model.Chat{}).
		Where("(context_type = ? AND context_id IN (?)) OR (context_type = ? AND context_id IN (?))",
			string(entity.ChatContextNote), notes, string(entity.ChatContextDocument), documents).
		Updates(map[string]interface{}{"context_type": "", "context_id": nil}).Error
}

// Participants

type ChatParticipantRepositoryImpl struct {
	gormStore[entity.ChatParticipant, model.ChatParticipant]
}

func NewChatParticipantRepository(db *gorm.DB) contract.ChatParticipantRepository {
	m := mapper.NewChatMapper()
	return &ChatParticipantRepositoryImpl{newGormStore(db, m.ParticipantToModel, m.ParticipantToEntity)}
}

func (r *ChatParticipantRepositoryImpl) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	return r.deleteWhere(ctx, "chat_id = ?", chatId)
}

// Messages

type ChatMessageRepositoryImpl struct {
	gormStore[entity.ChatMessage, model.ChatMessage]
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	m := mapper.NewChatMapper()
	return &ChatMessageRepositoryImpl{newGormStore(db, m.MessageToModel, m.MessageToEntity)}
}

func (r *ChatMessageRepositoryImpl) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	return r.deleteWhere(ctx, "chat_id = ?", chatId)
}
