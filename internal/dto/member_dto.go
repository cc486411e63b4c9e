package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListMembersQuery struct {
	WorkspaceId string `query:"workspaceId" validate:"required,uuid"`
}

type AddMemberRequest struct {
	WorkspaceId string `json:"workspaceId" validate:"required,uuid"`
	Email       string `json:"email" validate:"required,email"`
	Role        string `json:"role" validate:"required,oneof=admin member viewer"`
}

func (r *AddMemberRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

type UpdateMemberRequest struct {
	Role string `json:"role" validate:"required,oneof=admin member viewer"`
}

type MemberResponse struct {
	UserId    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarUrl string    `json:"avatarUrl"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}
