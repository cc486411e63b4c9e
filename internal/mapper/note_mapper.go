package mapper

import (
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}
	return &entity.Note{
		Id:          n.Id,
		Title:       n.Title,
		Content:     n.Content,
		Tags:        tagsToEntity(n.Tags),
		WorkspaceId: n.WorkspaceId,
		AuthorId:    n.AuthorId,
		IsPinned:    n.IsPinned,
		IsArchived:  n.IsArchived,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}
	return &model.Note{
		Id:          n.Id,
		Title:       n.Title,
		Content:     n.Content,
		Tags:        tagsToModel(n.Tags),
		WorkspaceId: n.WorkspaceId,
		AuthorId:    n.AuthorId,
		IsPinned:    n.IsPinned,
		IsArchived:  n.IsArchived,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
