package service

import (
	"context"
	"fmt"
	"time"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/pagination"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/pkg/events"
	"ai-workspace-be/pkg/llm"

	"github.com/google/uuid"
)

// ChatNotifier pushes stored messages to connected participants.
type ChatNotifier interface {
	NotifyChatMessage(ctx context.Context, userIds []uuid.UUID, message dto.ChatMessageResponse)
}

type IChatService interface {
	List(ctx context.Context, userId uuid.UUID, params pagination.Params) (*pagination.Page[dto.ChatResponse], error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	Show(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatResponse, error)
	SendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	AskAI(ctx context.Context, userId, chatId uuid.UUID, req *dto.AskAIRequest) (*dto.AskAIResponse, error)
	Delete(ctx context.Context, userId, chatId uuid.UUID) error
}

type chatService struct {
	uowFactory   unitofwork.RepositoryFactory
	aiService    IAIService
	notifier     ChatNotifier
	eventService IEventService
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	aiService IAIService,
	notifier ChatNotifier,
	eventService IEventService,
) IChatService {
	return &chatService{
		uowFactory:   uowFactory,
		aiService:    aiService,
		notifier:     notifier,
		eventService: eventService,
	}
}

func (s *chatService) List(ctx context.Context, userId uuid.UUID, params pagination.Params) (*pagination.Page[dto.ChatResponse], error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	scope := specification.ParticipatedBy{UserID: userId}
	page, err := pagination.Fetch(ctx, params,
		func(ctx context.Context) (int64, error) {
			return uow.ChatRepository().Count(ctx, scope)
		},
		func(ctx context.Context, p pagination.Params) ([]*entity.Chat, error) {
			return uow.ChatRepository().FindAll(ctx,
				scope,
				specification.OrderBy{Field: "last_message_at", Desc: true},
				specification.Pagination{Limit: p.Limit, Offset: p.Offset()},
			)
		},
	)
	if err != nil {
		return nil, err
	}

	chatIds := make([]uuid.UUID, len(page.Items))
	for i, c := range page.Items {
		chatIds[i] = c.Id
	}
	participants, err := participantsOf(ctx, uow, chatIds)
	if err != nil {
		return nil, err
	}

	return pagination.Map(page, func(c *entity.Chat) dto.ChatResponse {
		return toChatResponse(c, participants[c.Id])
	}), nil
}

func (s *chatService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	participantIds := []uuid.UUID{userId}
	seen := map[uuid.UUID]bool{userId: true}
	for _, raw := range req.ParticipantIds {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperror.Validation(apperror.CodeInvalidID, "Invalid participant id")
		}
		if !seen[id] {
			seen[id] = true
			participantIds = append(participantIds, id)
		}
	}

	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	users, err := usersByIds(ctx, uow, participantIds)
	if err != nil {
		return nil, err
	}
	if len(users) != len(participantIds) {
		return nil, apperror.NotFound(apperror.CodeUserNotFound, "One or more participants do not exist")
	}

	chat := &entity.Chat{
		Id:            uuid.New(),
		Title:         trimSpace(req.Title),
		CreatedBy:     userId,
		LastMessageAt: time.Now(),
	}

	if req.ContextType != "" {
		contextId, err := uuid.Parse(req.ContextId)
		if err != nil {
			return nil, apperror.Validation(apperror.CodeInvalidID, "Invalid contextId")
		}
		kind := entity.ChatContextType(req.ContextType)
		title, _, err := readableContext(ctx, uow, userId, kind, contextId)
		if err != nil {
			return nil, err
		}
		chat.ContextType = kind
		chat.ContextId = &contextId
		if chat.Title == "" {
			chat.Title = title
		}
	}
	if chat.Title == "" {
		chat.Title = "New chat"
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().Create(ctx, chat); err != nil {
		return nil, err
	}
	now := time.Now()
	for _, id := range participantIds {
		if err := uow.ChatParticipantRepository().Create(ctx, &entity.ChatParticipant{
			Id:       uuid.New(),
			ChatId:   chat.Id,
			UserId:   id,
			JoinedAt: now,
		}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	participants := make([]dto.ChatParticipantResponse, 0, len(participantIds))
	for _, id := range participantIds {
		participants = append(participants, toParticipantResponse(id, now, users[id]))
	}
	res := toChatResponse(chat, participants)
	return &res, nil
}

func (s *chatService) Show(ctx context.Context, userId, chatId uuid.UUID) (*dto.ChatResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	chat, err := requireParticipant(ctx, uow, chatId, userId)
	if err != nil {
		return nil, err
	}

	participants, err := participantsOf(ctx, uow, []uuid.UUID{chatId})
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	names := participantNames(participants[chatId])
	res := toChatResponse(chat, participants[chatId])
	res.Messages = make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res.Messages = append(res.Messages, toChatMessageResponse(m, senderName(m, names)))
	}
	return &res, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId, chatId uuid.UUID, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	chat, err := requireParticipant(ctx, uow, chatId, userId)
	if err != nil {
		return nil, err
	}
	content := trimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("", "Message cannot be empty")
	}

	sender := userId
	message := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		SenderId:  &sender,
		Role:      entity.ChatRoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.store(ctx, uow, chat, message); err != nil {
		return nil, err
	}

	participants, err := participantsOf(ctx, uow, []uuid.UUID{chatId})
	if err != nil {
		return nil, err
	}
	names := participantNames(participants[chatId])
	res := toChatMessageResponse(message, senderName(message, names))

	s.notify(ctx, participants[chatId], res)
	s.eventService.Publish(ctx, events.New(constant.EventChatMessage, map[string]interface{}{
		"chatId":                 chatId.String(),
		constant.EventKeyActorID: userId.String(),
	}))
	return &res, nil
}

func (s *chatService) AskAI(ctx context.Context, userId, chatId uuid.UUID, req *dto.AskAIRequest) (*dto.AskAIResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	chat, err := requireParticipant(ctx, uow, chatId, userId)
	if err != nil {
		return nil, err
	}
	prompt := trimSpace(req.Prompt)
	if prompt == "" {
		return nil, apperror.Validation("", "Prompt cannot be empty")
	}

	history, err := s.buildHistory(ctx, uow, userId, chat, prompt)
	if err != nil {
		return nil, err
	}

	answer, err := s.aiService.Reply(ctx, history)
	if err != nil {
		return nil, err
	}

	sender := userId
	now := time.Now()
	question := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		SenderId:  &sender,
		Role:      entity.ChatRoleUser,
		Content:   prompt,
		CreatedAt: now,
	}
	reply := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		Role:      entity.ChatRoleAssistant,
		Content:   answer,
		CreatedAt: now.Add(time.Millisecond),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := s.store(ctx, uow, chat, question); err != nil {
		return nil, err
	}
	if err := s.store(ctx, uow, chat, reply); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	participants, err := participantsOf(ctx, uow, []uuid.UUID{chatId})
	if err != nil {
		return nil, err
	}
	names := participantNames(participants[chatId])
	res := &dto.AskAIResponse{
		UserMessage:      toChatMessageResponse(question, senderName(question, names)),
		AssistantMessage: toChatMessageResponse(reply, ""),
	}

	s.notify(ctx, participants[chatId], res.UserMessage)
	s.notify(ctx, participants[chatId], res.AssistantMessage)
	return res, nil
}

func (s *chatService) Delete(ctx context.Context, userId, chatId uuid.UUID) error {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}

	chat, err := requireParticipant(ctx, uow, chatId, userId)
	if err != nil {
		return err
	}
	if chat.CreatedBy != userId {
		return apperror.Forbidden("Only the creator can delete this chat")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByChatId(ctx, chatId); err != nil {
		return err
	}
	if err := uow.ChatParticipantRepository().DeleteByChatId(ctx, chatId); err != nil {
		return err
	}
	if err := uow.ChatRepository().Delete(ctx, chatId); err != nil {
		return err
	}

	return uow.Commit()
}

// buildHistory assembles the system prompt, the optional reference text,
// the most recent messages and the new prompt.
func (s *chatService) buildHistory(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, chat *entity.Chat, prompt string) ([]llm.Message, error) {
	history := []llm.Message{{Role: constant.ChatMessageRoleSystem, Content: constant.ChatSystemPrompt}}

	if chat.ContextType != entity.ChatContextNone && chat.ContextId != nil {
		title, content, err := contextText(ctx, uow, userId, chat.ContextType, *chat.ContextId)
		if err != nil {
			return nil, err
		}
		if content != "" {
			content = truncateRunes(content, constant.AIMaxInputChars)
			history = append(history, llm.Message{
				Role:    constant.ChatMessageRoleSystem,
				Content: fmt.Sprintf(constant.ChatContextTemplate, chat.ContextType, title, content),
			})
		}
	}

	recent, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatID{ChatID: chat.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: constant.ChatHistoryWindow},
	)
	if err != nil {
		return nil, err
	}
	for i := len(recent) - 1; i >= 0; i-- {
		role := constant.ChatMessageRoleUser
		if recent[i].Role == entity.ChatRoleAssistant {
			role = constant.ChatMessageRoleAssistant
		}
		history = append(history, llm.Message{Role: role, Content: recent[i].Content})
	}

	return append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: prompt}), nil
}

func (s *chatService) store(ctx context.Context, uow unitofwork.UnitOfWork, chat *entity.Chat, message *entity.ChatMessage) error {
	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return err
	}
	chat.LastMessageAt = message.CreatedAt
	return uow.ChatRepository().Update(ctx, chat)
}

func (s *chatService) notify(ctx context.Context, participants []dto.ChatParticipantResponse, message dto.ChatMessageResponse) {
	if s.notifier == nil {
		return
	}
	ids := make([]uuid.UUID, len(participants))
	for i, p := range participants {
		ids[i] = p.UserId
	}
	s.notifier.NotifyChatMessage(ctx, ids, message)
}

func requireParticipant(ctx context.Context, uow unitofwork.UnitOfWork, chatId, userId uuid.UUID) (*entity.Chat, error) {
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: chatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperror.NotFound("", "Chat not found")
	}

	count, err := uow.ChatParticipantRepository().Count(ctx,
		specification.ByChatID{ChatID: chatId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperror.Forbidden("You are not a participant of this chat")
	}
	return chat, nil
}

type chatContext struct {
	authorId    uuid.UUID
	workspaceId *uuid.UUID
	title       string
	content     string
}

// loadContext fetches the attached note or document; nil when it is gone.
func loadContext(ctx context.Context, uow unitofwork.UnitOfWork, kind entity.ChatContextType, id uuid.UUID) (*chatContext, error) {
	switch kind {
	case entity.ChatContextNote:
		note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil || note == nil {
			return nil, err
		}
		return &chatContext{note.AuthorId, note.WorkspaceId, note.Title, note.Content}, nil
	case entity.ChatContextDocument:
		document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil || document == nil {
			return nil, err
		}
		return &chatContext{document.AuthorId, document.WorkspaceId, document.Title, document.Content}, nil
	}
	return nil, apperror.Validation("", "contextType must be note or document")
}

// readableContext loads a note or document the caller may read.
func readableContext(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, kind entity.ChatContextType, id uuid.UUID) (string, string, error) {
	item, err := loadContext(ctx, uow, kind, id)
	if err != nil {
		return "", "", err
	}
	if item == nil {
		if kind == entity.ChatContextDocument {
			return "", "", apperror.NotFound("", "Document not found")
		}
		return "", "", apperror.NotFound("", "Note not found")
	}

	ok, err := canRead(ctx, uow, userId, item.authorId, item.workspaceId)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", apperror.Forbidden("You do not have access to this " + string(kind))
	}
	return item.title, item.content, nil
}

// contextText loads the attached item for the asking participant. A vanished
// item, or one the participant cannot read, yields "".
func contextText(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, kind entity.ChatContextType, id uuid.UUID) (string, string, error) {
	item, err := loadContext(ctx, uow, kind, id)
	if err != nil || item == nil {
		return "", "", err
	}
	ok, err := canRead(ctx, uow, userId, item.authorId, item.workspaceId)
	if err != nil || !ok {
		return "", "", err
	}
	return item.title, item.content, nil
}

func participantsOf(ctx context.Context, uow unitofwork.UnitOfWork, chatIds []uuid.UUID) (map[uuid.UUID][]dto.ChatParticipantResponse, error) {
	out := make(map[uuid.UUID][]dto.ChatParticipantResponse, len(chatIds))
	if len(chatIds) == 0 {
		return out, nil
	}

	rows, err := uow.ChatParticipantRepository().FindAll(ctx,
		specification.ByChatIDs{ChatIDs: chatIds},
		specification.OrderBy{Field: "joined_at"},
	)
	if err != nil {
		return nil, err
	}

	userIds := make([]uuid.UUID, 0, len(rows))
	for _, p := range rows {
		userIds = append(userIds, p.UserId)
	}
	users, err := usersByIds(ctx, uow, userIds)
	if err != nil {
		return nil, err
	}

	for _, p := range rows {
		out[p.ChatId] = append(out[p.ChatId], toParticipantResponse(p.UserId, p.JoinedAt, users[p.UserId]))
	}
	return out, nil
}

func participantNames(participants []dto.ChatParticipantResponse) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(participants))
	for _, p := range participants {
		names[p.UserId] = p.Name
	}
	return names
}

func senderName(m *entity.ChatMessage, names map[uuid.UUID]string) string {
	if m.SenderId == nil {
		return ""
	}
	return names[*m.SenderId]
}

func toParticipantResponse(userId uuid.UUID, joinedAt time.Time, u *entity.User) dto.ChatParticipantResponse {
	res := dto.ChatParticipantResponse{UserId: userId, JoinedAt: joinedAt}
	if u != nil {
		res.Name = u.Name
		res.Email = u.Email
		res.AvatarUrl = u.AvatarURL
	}
	return res
}

func toChatResponse(c *entity.Chat, participants []dto.ChatParticipantResponse) dto.ChatResponse {
	if participants == nil {
		participants = []dto.ChatParticipantResponse{}
	}
	return dto.ChatResponse{
		Id:            c.Id,
		Title:         c.Title,
		CreatedBy:     c.CreatedBy,
		ContextType:   string(c.ContextType),
		ContextId:     c.ContextId,
		Participants:  participants,
		LastMessageAt: c.LastMessageAt,
		CreatedAt:     c.CreatedAt,
	}
}
