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

type IDocumentService interface {
	List(ctx context.Context, userId uuid.UUID, query *dto.ListContentQuery) (*pagination.Page[dto.DocumentResponse], error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Show(ctx context.Context, userId, documentId uuid.UUID) (*dto.DocumentResponse, error)
	Update(ctx context.Context, userId, documentId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Patch(ctx context.Context, userId, documentId uuid.UUID, req *dto.PatchDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId, documentId uuid.UUID) error
	Summarize(ctx context.Context, userId, documentId uuid.UUID) (*dto.DocumentResponse, error)
}

type documentService struct {
	uowFactory   unitofwork.RepositoryFactory
	aiService    IAIService
	eventService IEventService
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, aiService IAIService, eventService IEventService) IDocumentService {
	return &documentService{
		uowFactory:   uowFactory,
		aiService:    aiService,
		eventService: eventService,
	}
}

func (s *documentService) List(ctx context.Context, userId uuid.UUID, query *dto.ListContentQuery) (*pagination.Page[dto.DocumentResponse], error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	filters, err := contentFilters(ctx, uow, userId, query, specification.DocumentSearchFields)
	if err != nil {
		return nil, err
	}

	page, err := pagination.Fetch(ctx, query.Params,
		func(ctx context.Context) (int64, error) {
			return uow.DocumentRepository().Count(ctx, filters...)
		},
		func(ctx context.Context, p pagination.Params) ([]*entity.Document, error) {
			return uow.DocumentRepository().FindAll(ctx, append(filters, contentOrder(p)...)...)
		},
	)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, toDocumentResponse), nil
}

func (s *documentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
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

	fileSize := req.FileSize
	if fileSize == 0 {
		fileSize = int64(len(req.Content))
	}
	document := &entity.Document{
		Id:          uuid.New(),
		Title:       trimSpace(req.Title),
		Content:     req.Content,
		FileName:    trimSpace(req.FileName),
		FileType:    trimSpace(req.FileType),
		FileSize:    fileSize,
		Tags:        cleanTags(req.Tags),
		WorkspaceId: workspaceId,
		AuthorId:    userId,
	}
	if document.Title == "" {
		return nil, apperror.Validation("", "Title is required")
	}

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}

	if workspaceId != nil {
		s.eventService.Publish(ctx, events.New(constant.EventDocumentCreated,
			constant.WorkspaceEvent(workspaceId.String(), userId.String(), document.Title)))
	}

	res := toDocumentResponse(document)
	return &res, nil
}

func (s *documentService) Show(ctx context.Context, userId, documentId uuid.UUID) (*dto.DocumentResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	document, err := s.loadReadable(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	res := toDocumentResponse(document)
	return &res, nil
}

func (s *documentService) Update(ctx context.Context, userId, documentId uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	document, err := s.loadModifiable(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	title := trimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("", "Title is required")
	}
	document.Title = title
	document.Content = req.Content
	document.Tags = cleanTags(req.Tags)
	if req.IsPinned != nil {
		document.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		document.IsArchived = *req.IsArchived
	}

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	res := toDocumentResponse(document)
	return &res, nil
}

func (s *documentService) Patch(ctx context.Context, userId, documentId uuid.UUID, req *dto.PatchDocumentRequest) (*dto.DocumentResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	document, err := s.loadModifiable(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := trimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("", "Title cannot be empty")
		}
		document.Title = title
	}
	if req.Content != nil {
		document.Content = *req.Content
	}
	if req.Tags != nil {
		document.Tags = cleanTags(req.Tags)
	}
	if req.IsPinned != nil {
		document.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		document.IsArchived = *req.IsArchived
	}

	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	res := toDocumentResponse(document)
	return &res, nil
}

func (s *documentService) Delete(ctx context.Context, userId, documentId uuid.UUID) error {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return err
	}

	document, err := s.loadModifiable(ctx, uow, userId, documentId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatRepository().ClearContext(ctx, entity.ChatContextDocument, documentId); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if document.WorkspaceId != nil {
		s.eventService.Publish(ctx, events.New(constant.EventDocumentDeleted,
			constant.WorkspaceEvent(document.WorkspaceId.String(), userId.String(), document.Title)))
	}
	return nil
}

// Summarize asks the AI delegate for a summary and stores it on the
// document. Any caller who can read the document may refresh it.
func (s *documentService) Summarize(ctx context.Context, userId, documentId uuid.UUID) (*dto.DocumentResponse, error) {
	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	document, err := s.loadReadable(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	summary, err := s.aiService.SummarizeText(ctx, document.Title+"\n\n"+document.Content)
	if err != nil {
		return nil, err
	}

	document.Summary = formatSummary(summary)
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		return nil, err
	}

	res := toDocumentResponse(document)
	return &res, nil
}

func (s *documentService) loadReadable(ctx context.Context, uow unitofwork.UnitOfWork, userId, documentId uuid.UUID) (*entity.Document, error) {
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperror.NotFound("", "Document not found")
	}

	ok, err := canRead(ctx, uow, userId, document.AuthorId, document.WorkspaceId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Forbidden("You do not have access to this document")
	}
	return document, nil
}

func (s *documentService) loadModifiable(ctx context.Context, uow unitofwork.UnitOfWork, userId, documentId uuid.UUID) (*entity.Document, error) {
	document, err := s.loadReadable(ctx, uow, userId, documentId)
	if err != nil {
		return nil, err
	}

	ok, err := canModify(ctx, uow, userId, document.AuthorId, document.WorkspaceId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Forbidden("Only the author or a workspace admin can change this document")
	}
	return document, nil
}
