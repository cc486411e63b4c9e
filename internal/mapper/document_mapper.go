package mapper

import (
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:          d.Id,
		Title:       d.Title,
		Content:     d.Content,
		FileName:    d.FileName,
		FileType:    d.FileType,
		FileSize:    d.FileSize,
		Summary:     d.Summary,
		Tags:        tagsToEntity(d.Tags),
		WorkspaceId: d.WorkspaceId,
		AuthorId:    d.AuthorId,
		IsPinned:    d.IsPinned,
		IsArchived:  d.IsArchived,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:          d.Id,
		Title:       d.Title,
		Content:     d.Content,
		FileName:    d.FileName,
		FileType:    d.FileType,
		FileSize:    d.FileSize,
		Summary:     d.Summary,
		Tags:        tagsToModel(d.Tags),
		WorkspaceId: d.WorkspaceId,
		AuthorId:    d.AuthorId,
		IsPinned:    d.IsPinned,
		IsArchived:  d.IsArchived,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
