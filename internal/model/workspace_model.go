package model

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	OwnerId     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

// WorkspaceMember is one row of a workspace's member list. The list order is
// JoinedAt ascending.
type WorkspaceMember struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_member"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_workspace_member;index"`
	Role        string    `gorm:"type:varchar(20);not null"`
	JoinedAt    time.Time `gorm:"not null"`
}

func (WorkspaceMember) TableName() string {
	return "workspace_members"
}

type Activity struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkspaceId uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorId     uuid.UUID `gorm:"type:uuid;not null"`
	Type        string    `gorm:"type:varchar(50);not null"`
	Subject     string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (Activity) TableName() string {
	return "activities"
}
