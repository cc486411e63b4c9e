package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Title       string                      `gorm:"type:varchar(200);not null"`
	Content     string                      `gorm:"type:text"`
	FileName    string                      `gorm:"type:varchar(255)"`
	FileType    string                      `gorm:"type:varchar(100)"`
	FileSize    int64                       `gorm:"not null"`
	Summary     string                      `gorm:"type:text"`
	Tags        datatypes.JSONSlice[string] `gorm:"not null"`
	WorkspaceId *uuid.UUID                  `gorm:"type:uuid;index"`
	AuthorId    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	IsPinned    bool                        `gorm:"not null"`
	IsArchived  bool                        `gorm:"not null"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}
