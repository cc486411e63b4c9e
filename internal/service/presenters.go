package service

import (
	"strings"

	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
)

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

func normalizeEmail(email string) string {
	return dto.NormalizeEmail(email)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:          u.Id,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Bio:         u.Bio,
		AvatarUrl:   u.AvatarURL,
		JobTitle:    u.JobTitle,
		Location:    u.Location,
		Website:     u.Website,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toPublicUserResponse(u *entity.User) dto.PublicUserResponse {
	return dto.PublicUserResponse{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		AvatarUrl: u.AvatarURL,
		JobTitle:  u.JobTitle,
	}
}

func toWorkspaceResponse(w *entity.Workspace, role entity.WorkspaceRole, memberCount int64) dto.WorkspaceResponse {
	return dto.WorkspaceResponse{
		Id:          w.Id,
		Name:        w.Name,
		Description: w.Description,
		OwnerId:     w.OwnerId,
		Role:        string(role),
		MemberCount: memberCount,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toMemberResponse(m *entity.WorkspaceMember, u *entity.User) dto.MemberResponse {
	res := dto.MemberResponse{
		UserId:   m.UserId,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
	if u != nil {
		res.Name = u.Name
		res.Email = u.Email
		res.AvatarUrl = u.AvatarURL
	}
	return res
}

func toActivityResponse(a *entity.Activity, actorName string) dto.ActivityResponse {
	return dto.ActivityResponse{
		Id:          a.Id,
		WorkspaceId: a.WorkspaceId,
		ActorId:     a.ActorId,
		ActorName:   actorName,
		Type:        a.Type,
		Subject:     a.Subject,
		CreatedAt:   a.CreatedAt,
	}
}

func toNoteResponse(n *entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		Id:          n.Id,
		Title:       n.Title,
		Content:     n.Content,
		Tags:        nonNilTags(n.Tags),
		WorkspaceId: n.WorkspaceId,
		AuthorId:    n.AuthorId,
		IsPinned:    n.IsPinned,
		IsArchived:  n.IsArchived,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		Id:          d.Id,
		Title:       d.Title,
		Content:     d.Content,
		FileName:    d.FileName,
		FileType:    d.FileType,
		FileSize:    d.FileSize,
		Summary:     d.Summary,
		Tags:        nonNilTags(d.Tags),
		WorkspaceId: d.WorkspaceId,
		AuthorId:    d.AuthorId,
		IsPinned:    d.IsPinned,
		IsArchived:  d.IsArchived,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toCardResponse(c *entity.Card, liked, bookmarked bool) dto.CardResponse {
	return dto.CardResponse{
		Id:            c.Id,
		Title:         c.Title,
		Content:       c.Content,
		Category:      c.Category,
		Tags:          nonNilTags(c.Tags),
		LikeCount:     c.LikeCount,
		BookmarkCount: c.BookmarkCount,
		AuthorId:      c.AuthorId,
		Liked:         liked,
		Bookmarked:    bookmarked,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toChatMessageResponse(m *entity.ChatMessage, senderName string) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Id:         m.Id,
		ChatId:     m.ChatId,
		SenderId:   m.SenderId,
		SenderName: senderName,
		Role:       string(m.Role),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
