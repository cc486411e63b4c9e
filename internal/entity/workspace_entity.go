package entity

import (
	"time"

	"github.com/google/uuid"
)

type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "owner"
	WorkspaceRoleAdmin  WorkspaceRole = "admin"
	WorkspaceRoleMember WorkspaceRole = "member"
	WorkspaceRoleViewer WorkspaceRole = "viewer"
)

// CanManage reports whether the role may change the workspace and its members.
func (r WorkspaceRole) CanManage() bool {
	return r == WorkspaceRoleOwner || r == WorkspaceRoleAdmin
}

// CanWrite reports whether the role may add content to the workspace.
func (r WorkspaceRole) CanWrite() bool {
	return r == WorkspaceRoleOwner || r == WorkspaceRoleAdmin || r == WorkspaceRoleMember
}

func (r WorkspaceRole) Valid() bool {
	switch r {
	case WorkspaceRoleOwner, WorkspaceRoleAdmin, WorkspaceRoleMember, WorkspaceRoleViewer:
		return true
	}
	return false
}

type Workspace struct {
	Id          uuid.UUID
	Name        string
	Description string
	OwnerId     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type WorkspaceMember struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	UserId      uuid.UUID
	Role        WorkspaceRole
	JoinedAt    time.Time
}

type Activity struct {
	Id          uuid.UUID
	WorkspaceId uuid.UUID
	ActorId     uuid.UUID
	Type        string
	Subject     string
	CreatedAt   time.Time
}
