package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Card struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Title         string                      `gorm:"type:varchar(200);not null"`
	Content       string                      `gorm:"type:text"`
	Category      string                      `gorm:"type:varchar(50);index"`
	Tags          datatypes.JSONSlice[string] `gorm:"not null"`
	LikeCount     int                         `gorm:"not null"`
	BookmarkCount int                         `gorm:"not null"`
	AuthorId      uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
}

func (Card) TableName() string {
	return "cards"
}

type CardLike struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CardId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_card_like"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_card_like"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CardLike) TableName() string {
	return "card_likes"
}

type CardBookmark struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CardId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_card_bookmark"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_card_bookmark"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (CardBookmark) TableName() string {
	return "card_bookmarks"
}
