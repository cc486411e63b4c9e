package implementation

import (
	"context"
	"fmt"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepositoryImpl struct {
	gormStore[entity.Card, model.Card]
}

func NewCardRepository(db *gorm.DB) contract.CardRepository {
	m := mapper.NewCardMapper()
	return &CardRepositoryImpl{newGormStore(db, m.ToModel, m.ToEntity)}
}

func (r *CardRepositoryImpl) SetCounter(ctx context.Context, id uuid.UUID, kind entity.CardReaction, value int64) error {
	column, err := counterColumn(kind)
	if err != nil {
		return err
	}
	return r.updateColumn(ctx, id, column, value)
}

func counterColumn(kind entity.CardReaction) (string, error) {
	switch kind {
	case entity.CardReactionLike:
		return "like_count", nil
	case entity.CardReactionBookmark:
		return "bookmark_count", nil
	}
	return "", fmt.Errorf("unknown card reaction %q", kind)
}

// Reactions

type CardReactionRepositoryImpl struct {
	db *gorm.DB
}

func NewCardReactionRepository(db *gorm.DB) contract.CardReactionRepository {
	return &CardReactionRepositoryImpl{db: db}
}

func reactionModel(kind entity.CardReaction) (interface{}, error) {
	switch kind {
	case entity.CardReactionLike:
		return &model.CardLike{}, nil
	case entity.CardReactionBookmark:
		return &model.CardBookmark{}, nil
	}
	return nil, fmt.Errorf("unknown card reaction %q", kind)
}

func (r *CardReactionRepositoryImpl) Add(ctx context.Context, kind entity.CardReaction, cardId, userId uuid.UUID) error {
	var row interface{}
	switch kind {
	case entity.CardReactionLike:
		row = &model.CardLike{Id: uuid.New(), CardId: cardId, UserId: userId}
	case entity.CardReactionBookmark:
		row = &model.CardBookmark{Id: uuid.New(), CardId: cardId, UserId: userId}
	default:
		return fmt.Errorf("unknown card reaction %q", kind)
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *CardReactionRepositoryImpl) Remove(ctx context.Context, kind entity.CardReaction, cardId, userId uuid.UUID) error {
	m, err := reactionModel(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("card_id = ? AND user_id = ?", cardId, userId).Delete(m).Error
}

func (r *CardReactionRepositoryImpl) Exists(ctx context.Context, kind entity.CardReaction, cardId, userId uuid.UUID) (bool, error) {
	m, err := reactionModel(kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(m).
		Where("card_id = ? AND user_id = ?", cardId, userId).
		Count(&count).Error
	return count > 0, err
}

func (r *CardReactionRepositoryImpl) CountByCard(ctx context.Context, kind entity.CardReaction, cardId uuid.UUID) (int64, error) {
	m, err := reactionModel(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(m).Where("card_id = ?", cardId).Count(&count).Error
	return count, err
}

func (r *CardReactionRepositoryImpl) DeleteByCardId(ctx context.Context, kind entity.CardReaction, cardId uuid.UUID) error {
	m, err := reactionModel(kind)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("card_id = ?", cardId).Delete(m).Error
}

func (r *CardReactionRepositoryImpl) CardIdsOf(ctx context.Context, kind entity.CardReaction, userId uuid.UUID, cardIds []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(cardIds))
	if len(cardIds) == 0 {
		return result, nil
	}
	m, err := reactionModel(kind)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	err = r.db.WithContext(ctx).Model(m).
		Where("user_id = ? AND card_id IN ?", userId, cardIds).
		Pluck("card_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
