package specification

import (
	"strings"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

// ByEmail matches the normalised (trimmed, lower-case) address.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", strings.ToLower(strings.TrimSpace(s.Email)))
}

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// UsersSharingWorkspaceWith selects every user that is a member of at least
// one workspace the given user belongs to, the user included.
type UsersSharingWorkspaceWith struct {
	UserID uuid.UUID
}

func (s UsersSharingWorkspaceWith) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"id IN (SELECT wm.user_id FROM workspace_members wm WHERE wm.workspace_id IN (SELECT workspace_id FROM workspace_members WHERE user_id = ?))",
		s.UserID,
	)
}
