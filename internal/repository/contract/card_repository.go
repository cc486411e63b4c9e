package contract

import (
	"context"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CardRepository interface {
	Create(ctx context.Context, card *entity.Card) error
	Update(ctx context.Context, card *entity.Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Card, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Card, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SetCounter stores the like or bookmark total of a card.
	SetCounter(ctx context.Context, id uuid.UUID, kind entity.CardReaction, value int64) error
}

// CardReactionRepository stores likes and bookmarks, one row per user and card.
type CardReactionRepository interface {
	Add(ctx context.Context, kind entity.CardReaction, cardId, userId uuid.UUID) error
	Remove(ctx context.Context, kind entity.CardReaction, cardId, userId uuid.UUID) error
	Exists(ctx context.Context, kind entity.CardReaction, cardId, userId uuid.UUID) (bool, error)
	CountByCard(ctx context.Context, kind entity.CardReaction, cardId uuid.UUID) (int64, error)
	DeleteByCardId(ctx context.Context, kind entity.CardReaction, cardId uuid.UUID) error
	// CardIdsOf returns which of cardIds the user has reacted to.
	CardIdsOf(ctx context.Context, kind entity.CardReaction, userId uuid.UUID, cardIds []uuid.UUID) (map[uuid.UUID]bool, error)
}
