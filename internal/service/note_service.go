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

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID, query *dto.ListContentQuery) (*pagination.Page[dto.NoteResponse], error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId, noteId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Patch(ctx context.Context, userId, noteId uuid.UUID, req *dto.PatchNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId, noteId uuid.UUID) error
}

type noteService struct {
	uowFactory   unitofwork.RepositoryFactory
	eventService IEventService
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, eventService IEventService) INoteService {
	return &noteService{
		uowFactory:   uowFactory,
		eventService: eventService,
	}
}

// contentFilters builds the scope and filter specifications shared by note
// and document listings.
func contentFilters(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, query *dto.ListContentQuery, searchFields []string) ([]specification.Specification, error) {
	workspaceId, err := parseOptionalUUID(query.WorkspaceId, "workspaceId")
	if err != nil {
		return nil, err
	}

	var specs []specification.Specification
	if workspaceId != nil {
		if _, _, err := requireMember(ctx, uow, *workspaceId, userId); err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByWorkspaceID{WorkspaceID: *workspaceId})
	} else {
		specs = append(specs, specification.AuthoredBy{UserID: userId})
	}

	if tag := trimSpace(query.Tag); tag != "" {
		specs = append(specs, specification.WithTag{Tag: tag})
	}
	if q := trimSpace(query.Q); q != "" {
		specs = append(specs, specification.TextSearch{Query: q, Fields: searchFields})
	}
	if query.Pinned != nil {
		specs = append(specs, specification.Pinned{Value: *query.Pinned})
	}
	archived := false
	if query.Archived != nil {
		archived = *query.Archived
	}
	specs = append(specs, specification.Archived{Value: archived})

	return specs, nil
}

func contentOrder(p pagination.Params) []specification.Specification {
	return []specification.Specification{
		specification.OrderBy{Field: "is_pinned", Desc: true},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: p.Limit, Offset: p.Offset()},
	}
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, query *dto.ListContentQuery) (*pagination.Page[dto.NoteResponse], error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	filters, err := contentFilters(ctx, uow, userId, query, specification.NoteSearchFields)
	if err != nil {
		return nil, err
	}

	page, err := pagination.Fetch(ctx, query.Params,
		func(ctx context.Context) (int64, error) {
			return uow.NoteRepository().Count(ctx, filters...)
		},
		func(ctx context.Context, p pagination.Params) ([]*entity.Note, error) {
			return uow.NoteRepository().FindAll(ctx, append(filters, contentOrder(p)...)...)
		},
	)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, toNoteResponse), nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	workspaceId, err := parseOptionalUUID(req.WorkspaceId, "workspaceId")
	if err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	if workspaceId != nil {
		if err := requireWriter(ctx, uow, *workspaceId, userId); err != nil {
			return nil, err
		}
	}

	note := &entity.Note{
		Id:          uuid.New(),
		Title:       trimSpace(req.Title),
		Content:     req.Content,
		Tags:        cleanTags(req.Tags),
		WorkspaceId: workspaceId,
		AuthorId:    userId,
	}
	if note.Title == "" {
		return nil, apperror.Validation("", "Title is required")
	}

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	if workspaceId != nil {
		s.eventService.Publish(ctx, events.New(constant.EventNoteCreated,
			constant.WorkspaceEvent(workspaceId.String(), userId.String(), note.Title)))
	}

	res := toNoteResponse(note)
	return &res, nil
}

func (s *noteService) Show(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	note, err := s.loadReadable(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	res := toNoteResponse(note)
	return &res, nil
}

func (s *noteService) Update(ctx context.Context, userId, noteId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	note, err := s.loadModifiable(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	title := trimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("", "Title is required")
	}
	note.Title = title
	note.Content = req.Content
	note.Tags = cleanTags(req.Tags)
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	res := toNoteResponse(note)
	return &res, nil
}

func (s *noteService) Patch(ctx context.Context, userId, noteId uuid.UUID, req *dto.PatchNoteRequest) (*dto.NoteResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	note, err := s.loadModifiable(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := trimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("", "Title cannot be empty")
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = cleanTags(req.Tags)
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	res := toNoteResponse(note)
	return &res, nil
}

func (s *noteService) Delete(ctx context.Context, userId, noteId uuid.UUID) error {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}

	note, err := s.loadModifiable(ctx, uow, userId, noteId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().ClearContext(ctx, entity.ChatContextNote, noteId); err != nil {
		return err
	}
	if err := uow.NoteRepository().Delete(ctx, noteId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if note.WorkspaceId != nil {
		s.eventService.Publish(ctx, events.New(constant.EventNoteDeleted,
			constant.WorkspaceEvent(note.WorkspaceId.String(), userId.String(), note.Title)))
	}
	return nil
}

func (s *noteService) loadReadable(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("", "Note not found")
	}

	ok, err := canRead(ctx, uow, userId, note.AuthorId, note.WorkspaceId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Forbidden("You do not have access to this note")
	}
	return note, nil
}

func (s *noteService) loadModifiable(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) (*entity.Note, error) {
	note, err := s.loadReadable(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	ok, err := canModify(ctx, uow, userId, note.AuthorId, note.WorkspaceId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Forbidden("Only the author or a workspace admin can change this note")
	}
	return note, nil
}
