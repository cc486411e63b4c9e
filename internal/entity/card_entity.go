package entity

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	Id            uuid.UUID
	Title         string
	Content       string
	Category      string
	Tags          []string
	LikeCount     int
	BookmarkCount int
	AuthorId      uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CardReaction names the per-user toggles kept on a card.
type CardReaction string

const (
	CardReactionLike     CardReaction = "like"
	CardReactionBookmark CardReaction = "bookmark"
)
