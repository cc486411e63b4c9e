package contract

import (
	"context"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Update(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// ClearContext detaches every chat pointing at the given note or document.
	ClearContext(ctx context.Context, contextType entity.ChatContextType, contextId uuid.UUID) error
	// ClearWorkspaceContexts detaches chats pointing at any note or document of the workspace.
	ClearWorkspaceContexts(ctx context.Context, workspaceId uuid.UUID) error
}

type ChatParticipantRepository interface {
	Create(ctx context.Context, participant *entity.ChatParticipant) error
	DeleteByChatId(ctx context.Context, chatId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatParticipant, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
