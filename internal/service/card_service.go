package service

import (
	"context"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/pagination"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/pkg/events"

	"github.com/google/uuid"
)

type ICardService interface {
	List(ctx context.Context, userId uuid.UUID, query *dto.ListCardsQuery) (*pagination.Page[dto.CardResponse], error)
	Bookmarks(ctx context.Context, userId uuid.UUID, params pagination.Params) (*pagination.Page[dto.CardResponse], error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error)
	Show(ctx context.Context, userId, cardId uuid.UUID) (*dto.CardResponse, error)
	Update(ctx context.Context, userId, cardId uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error)
	Delete(ctx context.Context, userId, cardId uuid.UUID) error
	// Toggle flips the caller's like or bookmark and returns the card with
	// its recomputed counters.
	Toggle(ctx context.Context, userId, cardId uuid.UUID, kind entity.CardReaction) (*dto.CardResponse, error)
}

type cardService struct {
	uowFactory   unitofwork.RepositoryFactory
	eventService IEventService
}

func NewCardService(uowFactory unitofwork.RepositoryFactory, eventService IEventService) ICardService {
	return &cardService{
		uowFactory:   uowFactory,
		eventService: eventService,
	}
}

func (s *cardService) List(ctx context.Context, userId uuid.UUID, query *dto.ListCardsQuery) (*pagination.Page[dto.CardResponse], error) {
	var filters []specification.Specification
	if category := trimSpace(query.Category); category != "" {
		filters = append(filters, specification.ByCategory{Category: category})
	}
	if tag := trimSpace(query.Tag); tag != "" {
		filters = append(filters, specification.WithTag{Tag: tag})
	}
	if q := trimSpace(query.Q); q != "" {
		filters = append(filters, specification.TextSearch{Query: q, Fields: specification.CardSearchFields})
	}
	return s.page(ctx, userId, query.Params, filters)
}

func (s *cardService) Bookmarks(ctx context.Context, userId uuid.UUID, params pagination.Params) (*pagination.Page[dto.CardResponse], error) {
	return s.page(ctx, userId, params, []specification.Specification{specification.BookmarkedBy{UserID: userId}})
}

func (s *cardService) page(ctx context.Context, userId uuid.UUID, params pagination.Params, filters []specification.Specification) (*pagination.Page[dto.CardResponse], error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	page, err := pagination.Fetch(ctx, params,
		func(ctx context.Context) (int64, error) {
			return uow.CardRepository().Count(ctx, filters...)
		},
		func(ctx context.Context, p pagination.Params) ([]*entity.Card, error) {
			return uow.CardRepository().FindAll(ctx, append(filters,
				specification.OrderBy{Field: "created_at", Desc: true},
				specification.Pagination{Limit: p.Limit, Offset: p.Offset()},
			)...)
		},
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(page.Items))
	for i, c := range page.Items {
		ids[i] = c.Id
	}
	liked, err := uow.CardReactionRepository().CardIdsOf(ctx, entity.CardReactionLike, userId, ids)
	if err != nil {
		return nil, err
	}
	bookmarked, err := uow.CardReactionRepository().CardIdsOf(ctx, entity.CardReactionBookmark, userId, ids)
	if err != nil {
		return nil, err
	}

	return pagination.Map(page, func(c *entity.Card) dto.CardResponse {
		return toCardResponse(c, liked[c.Id], bookmarked[c.Id])
	}), nil
}

func (s *cardService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCardRequest) (*dto.CardResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	card := &entity.Card{
		Id:       uuid.New(),
		Title:    trimSpace(req.Title),
		Content:  req.Content,
		Category: trimSpace(req.Category),
		Tags:     cleanTags(req.Tags),
		AuthorId: userId,
	}
	if card.Title == "" {
		return nil, apperror.Validation("", "Title is required")
	}

	if err := uow.CardRepository().Create(ctx, card); err != nil {
		return nil, err
	}

	res := toCardResponse(card, false, false)
	return &res, nil
}

func (s *cardService) Show(ctx context.Context, userId, cardId uuid.UUID) (*dto.CardResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	card, err := loadCard(ctx, uow, cardId)
	if err != nil {
		return nil, err
	}
	return cardWithReactions(ctx, uow, card, userId)
}

func (s *cardService) Update(ctx context.Context, userId, cardId uuid.UUID, req *dto.UpdateCardRequest) (*dto.CardResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	card, err := loadCard(ctx, uow, cardId)
	if err != nil {
		return nil, err
	}
	if card.AuthorId != userId {
		return nil, apperror.Forbidden("Only the author can edit this card")
	}

	if req.Title != nil {
		title := trimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("", "Title cannot be empty")
		}
		card.Title = title
	}
	if req.Content != nil {
		card.Content = *req.Content
	}
	if req.Category != nil {
		card.Category = trimSpace(*req.Category)
	}
	if req.Tags != nil {
		card.Tags = cleanTags(req.Tags)
	}

	if err := uow.CardRepository().Update(ctx, card); err != nil {
		return nil, err
	}
	return cardWithReactions(ctx, uow, card, userId)
}

func (s *cardService) Delete(ctx context.Context, userId, cardId uuid.UUID) error {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}

	card, err := loadCard(ctx, uow, cardId)
	if err != nil {
		return err
	}
	if card.AuthorId != userId {
		return apperror.Forbidden("Only the author can delete this card")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CardReactionRepository().DeleteByCardId(ctx, entity.CardReactionLike, cardId); err != nil {
		return err
	}
	if err := uow.CardReactionRepository().DeleteByCardId(ctx, entity.CardReactionBookmark, cardId); err != nil {
		return err
	}
	if err := uow.CardRepository().Delete(ctx, cardId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.eventService.Publish(ctx, events.New(constant.EventCardDeleted, map[string]interface{}{
		"cardId":                 cardId.String(),
		constant.EventKeyActorID: userId.String(),
		constant.EventKeySubject: card.Title,
	}))
	return nil
}

func (s *cardService) Toggle(ctx context.Context, userId, cardId uuid.UUID, kind entity.CardReaction) (*dto.CardResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := loadCard(ctx, uow, cardId); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	reactions := uow.CardReactionRepository()
	exists, err := reactions.Exists(ctx, kind, cardId, userId)
	if err != nil {
		return nil, err
	}
	if exists {
		err = reactions.Remove(ctx, kind, cardId, userId)
	} else {
		err = reactions.Add(ctx, kind, cardId, userId)
	}
	if err != nil {
		return nil, err
	}

	// The counter is recomputed from the rows, never incremented.
	total, err := reactions.CountByCard(ctx, kind, cardId)
	if err != nil {
		return nil, err
	}
	if err := uow.CardRepository().SetCounter(ctx, cardId, kind, total); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	card, err := loadCard(ctx, uow, cardId)
	if err != nil {
		return nil, err
	}
	return cardWithReactions(ctx, uow, card, userId)
}

func loadCard(ctx context.Context, uow unitofwork.UnitOfWork, cardId uuid.UUID) (*entity.Card, error) {
	card, err := uow.CardRepository().FindOne(ctx, specification.ByID{ID: cardId})
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, apperror.NotFound("", "Card not found")
	}
	return card, nil
}

func cardWithReactions(ctx context.Context, uow unitofwork.UnitOfWork, card *entity.Card, userId uuid.UUID) (*dto.CardResponse, error) {
	liked, err := uow.CardReactionRepository().Exists(ctx, entity.CardReactionLike, card.Id, userId)
	if err != nil {
		return nil, err
	}
	bookmarked, err := uow.CardReactionRepository().Exists(ctx, entity.CardReactionBookmark, card.Id, userId)
	if err != nil {
		return nil, err
	}

	res := toCardResponse(card, liked, bookmarked)
	return &res, nil
}
