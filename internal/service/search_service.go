package service

import (
	"context"
	"unicode/utf8"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/repository/specification"
	"ai-workspace-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type ISearchService interface {
	Search(ctx context.Context, userId uuid.UUID, query *dto.SearchQuery) (*dto.SearchResponse, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory) ISearchService {
	return &searchService{uowFactory: uowFactory}
}

func (s *searchService) Search(ctx context.Context, userId uuid.UUID, query *dto.SearchQuery) (*dto.SearchResponse, error) {
	q := trimSpace(query.Q)
	if utf8.RuneCountInString(q) < dto.SearchMinQueryLength {
		return nil, apperror.Validation("", "Search query must be at least 2 characters")
	}
	kind := query.Type
	if kind == "" {
		kind = dto.SearchTypeAll
	}
	limit := query.Limit
	if limit <= 0 {
		limit = dto.SearchDefaultLimit
	}
	if limit > 50 {
		limit = 50
	}

	uow, err := s.uowFactory.NewUnitOfWork(ctx)
	if err != nil {
		return nil, err
	}

	want := func(t string) bool { return kind == dto.SearchTypeAll || kind == t }
	page := specification.Pagination{Limit: limit}

	results := dto.SearchResults{
		Notes:      []dto.NoteResponse{},
		Documents:  []dto.DocumentResponse{},
		Members:    []dto.PublicUserResponse{},
		Workspaces: []dto.WorkspaceResponse{},
	}

	var (
		notes      []*entity.Note
		documents  []*entity.Document
		members    []*entity.User
		workspaces []*entity.Workspace
	)

	g, gctx := errgroup.WithContext(ctx)
	if want(dto.SearchTypeNotes) {
		g.Go(func() error {
			var err error
			notes, err = uow.NoteRepository().FindAll(gctx,
				specification.VisibleTo{UserID: userId},
				specification.TextSearch{Query: q, Fields: specification.NoteSearchFields},
				specification.OrderBy{Field: "updated_at", Desc: true},
				page,
			)
			return err
		})
	}
	if want(dto.SearchTypeDocuments) {
		g.Go(func() error {
			var err error
			documents, err = uow.DocumentRepository().FindAll(gctx,
				specification.VisibleTo{UserID: userId},
				specification.TextSearch{Query: q, Fields: specification.DocumentSearchFields},
				specification.OrderBy{Field: "updated_at", Desc: true},
				page,
			)
			return err
		})
	}
	if want(dto.SearchTypeMembers) {
		g.Go(func() error {
			var err error
			members, err = uow.UserRepository().FindAll(gctx,
				specification.UsersSharingWorkspaceWith{UserID: userId},
				specification.TextSearch{Query: q, Fields: specification.UserSearchFields},
				specification.OrderBy{Field: "created_at", Desc: true},
				page,
			)
			return err
		})
	}
	if want(dto.SearchTypeWorkspaces) {
		g.Go(func() error {
			var err error
			workspaces, err = uow.WorkspaceRepository().FindAll(gctx,
				specification.WorkspacesOfMember{UserID: userId},
				specification.TextSearch{Query: q, Fields: specification.WorkspaceSearchFields},
				specification.OrderBy{Field: "created_at", Desc: true},
				page,
			)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, n := range notes {
		results.Notes = append(results.Notes, toNoteResponse(n))
	}
	for _, d := range documents {
		results.Documents = append(results.Documents, toDocumentResponse(d))
	}
	for _, u := range members {
		results.Members = append(results.Members, toPublicUserResponse(u))
	}
	for _, w := range workspaces {
		results.Workspaces = append(results.Workspaces, toWorkspaceResponse(w, "", 0))
	}

	return &dto.SearchResponse{
		Query:   q,
		Type:    kind,
		Results: results,
		Total:   len(results.Notes) + len(results.Documents) + len(results.Members) + len(results.Workspaces),
	}, nil
}
