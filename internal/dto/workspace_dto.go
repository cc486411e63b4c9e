package dto

import (
	"time"

	"ai-workspace-be/internal/pkg/pagination"

	"github.com/google/uuid"
)

type CreateWorkspaceRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type WorkspaceResponse struct {
	Id          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	OwnerId     uuid.UUID        `json:"ownerId"`
	Role        string           `json:"role,omitempty"`
	MemberCount int64            `json:"memberCount"`
	Members     []MemberResponse `json:"members,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type ActivityResponse struct {
	Id          uuid.UUID `json:"id"`
	WorkspaceId uuid.UUID `json:"workspaceId"`
	ActorId     uuid.UUID `json:"actorId"`
	ActorName   string    `json:"actorName"`
	Type        string    `json:"type"`
	Subject     string    `json:"subject"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ListWorkspacesQuery struct {
	pagination.Params
}
